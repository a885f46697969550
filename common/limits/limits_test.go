// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !windows && !plan9
// +build !windows,!plan9

package limits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLimits(t *testing.T) {
	cur, max, err := GetLimits()
	require.NoError(t, err)
	if max < fileLimitMin {
		assert.Error(t, SetLimits())
		return
	}
	require.NoError(t, SetLimits())
	after, _, err := GetLimits()
	require.NoError(t, err)
	assert.True(t, after >= cur)
	assert.True(t, after >= fileLimitWant || after == max)
}
