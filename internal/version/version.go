// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package version

// Version is stamped at build time via -ldflags.
var Version = "dev"
