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

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig is returned for a Config or GenSpec outside its bounds.
	ErrInvalidConfig = errors.New("invalid table config")

	// ErrTableTooWide is returned when a table field would need more than
	// 64 bits.
	ErrTableTooWide = errors.New("table field wider than 64 bits")

	// ErrCorruptTable is returned by Unmarshal for a damaged or truncated
	// artifact.
	ErrCorruptTable = errors.New("corrupt table artifact")

	// ErrTableMismatch is returned when table entries disagree with the
	// reference algorithm, or when tables of different codes are combined.
	ErrTableMismatch = errors.New("table does not match its code")
)
