// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package aws centralizes AWS SDK v2 config loading for the publish command
// so callers don't each reinvent the profile/region option plumbing.
package aws
