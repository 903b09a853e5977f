// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// vizdocgo is the main package for the vizdoc command line tool. It wires the
// CLI, delegates to internal packages, and serves as the entry point for the
// vizkit documentation gallery build.
package main
