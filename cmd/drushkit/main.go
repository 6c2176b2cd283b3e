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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/walteh/drushkit/pkg/tempfiles"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	// The registry drain is the last deferred action before exit, so every
	// temp file and directory allocated during the run dies with the
	// process, whichever command path we took.
	registry := tempfiles.NewRegistry()
	defer registry.DrainAndDelete(ctx)

	rootCmd := NewRootCmd(registry)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("command failed")
		return 1
	}
	return 0
}
