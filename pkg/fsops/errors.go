// Copyright 2025 walteh LLC
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

package fsops

import (
	"gitlab.com/tozd/go/errors"
)

// Stable error kinds for tree operations. Callers match them with errors.Is;
// the wrapped message always names both paths involved.
var (
	// ErrDestinationExists is returned when the destination already exists
	// and overwrite was not requested.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrSourceNotFound is returned when the source does not exist or
	// cannot be opened for reading.
	ErrSourceNotFound = errors.New("source does not exist or is not readable")

	// ErrDestinationNotWritable is returned when the destination's parent
	// directory cannot be written to.
	ErrDestinationNotWritable = errors.New("destination parent is not writable")

	// ErrCopyFailure is returned when a recursive copy fails partway.
	// State between source and destination is unknown; no rollback is attempted.
	ErrCopyFailure = errors.New("recursive copy failed")

	// ErrMoveFailure is returned when the copy+delete fallback of a move
	// fails partway. Both copies may be present afterwards.
	ErrMoveFailure = errors.New("recursive move failed")
)
