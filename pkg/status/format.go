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

// Package status reports the outcome of path operations to the user.
package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	pathIndent  = 4  // spaces to indent path entries
	nameWidth   = 35 // Base width for the path
	actionWidth = 15 // Width for the action text
)

// 🎯 Op is the kind of path operation being reported
type Op int

const (
	OpCopied Op = iota
	OpMoved
	OpDeleted
	OpCreated
	OpBackedUp
	OpSkipped
	OpError
)

// 📝 String returns the user-facing action name
func (o Op) String() string {
	switch o {
	case OpCopied:
		return "Copied"
	case OpMoved:
		return "Moved"
	case OpDeleted:
		return "Deleted"
	case OpCreated:
		return "Created"
	case OpBackedUp:
		return "Backed up"
	case OpSkipped:
		return "Skipped"
	case OpError:
		return "Failed"
	default:
		return "Unknown"
	}
}

// 🎯 FormatPathOperation formats a single path operation line
func FormatPathOperation(path string, op Op) string {
	// Determine prefix symbol
	var prefix string
	switch op {
	case OpCopied, OpCreated, OpBackedUp:
		prefix = color.GreenString("✓")
	case OpMoved:
		prefix = color.YellowString("⟳")
	case OpDeleted:
		prefix = color.RedString("✗")
	case OpError:
		prefix = color.RedString("!")
	default:
		prefix = color.HiBlackString("-")
	}

	// Format parts with padding
	namePart := fmt.Sprintf("%-*s", nameWidth, path)
	actionPart := fmt.Sprintf("%-*s", actionWidth, op.String())

	// Build final string with indentation
	return fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", pathIndent),
		prefix,
		namePart,
		actionPart,
	)
}

// ❌ FormatError formats an error for user display
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
