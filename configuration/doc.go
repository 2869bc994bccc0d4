// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - Lua based configuration for the command
// line tools
//
// The configuration file is an executable Lua chunk whose final
// expression is the configuration table; this allows computed values
// and environment inspection in the file itself.
package configuration
