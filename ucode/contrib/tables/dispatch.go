// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tables

import (
	"os"
	"strconv"

	"golang.org/x/sys/cpu"
)

// defaultLayout is the layout LayoutDefault resolves to. Set by init().
var defaultLayout Layout

// noTables disables tables in the default codecs. Set by init().
var noTables bool

func init() {
	noTables = NoTablesEnv()
	defaultLayout = NativeLayout()
	if name := os.Getenv("UCODE_TABLE_LAYOUT"); name != "" {
		if l, err := ParseLayout(name); err == nil && l != LayoutDefault {
			defaultLayout = l
		}
	}
}

// NativeLayout returns the packed layout matching the host byte order.
func NativeLayout() Layout {
	if cpu.IsBigEndian {
		return PackedBE
	}
	return PackedLE
}

// DefaultLayout returns the layout used when a Config leaves it unset:
// UCODE_TABLE_LAYOUT if it names a layout, NativeLayout otherwise.
func DefaultLayout() Layout {
	return defaultLayout
}

// NoTablesEnv reports whether the UCODE_NO_TABLES environment variable is
// set. When set, the default codecs decode and encode with the reference
// algorithms only, which is useful for testing and debugging.
func NoTablesEnv() bool {
	val := os.Getenv("UCODE_NO_TABLES")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
