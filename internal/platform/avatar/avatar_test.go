// Copyright (c) 2026 Contactbook. All rights reserved.
// Author: igor.ivn.olga@gmail.com

package avatar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/igorivnaolga/contactbook/internal/platform/avatar"
)

/*
TestGravatarURL verifies normalization: case and surrounding whitespace must
not change the derived avatar, and the identicon fallback is always requested.
*/
func TestGravatarURL(t *testing.T) {
	baseline := avatar.GravatarURL("ada@example.com")

	assert.Contains(t, baseline, "https://www.gravatar.com/avatar/")
	assert.Contains(t, baseline, "?d=identicon")

	assert.Equal(t, baseline, avatar.GravatarURL("ADA@Example.COM"))
	assert.Equal(t, baseline, avatar.GravatarURL("  ada@example.com  "))
	assert.NotEqual(t, baseline, avatar.GravatarURL("other@example.com"))
}
