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

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walteh/drushkit/pkg/config"
)

// 🧪 TestStoreOptions tests option seeding, defaults and overrides
func TestStoreOptions(t *testing.T) {
	store := config.NewStore(&config.Config{
		BackupDir: "/var/backups",
		Database:  "mydb",
	})

	assert.Equal(t, "/var/backups", store.GetOption(config.OptBackupDir, "unused-default"))
	assert.Equal(t, "mydb", store.GetOption(config.OptDatabase, "unknown"))

	// Unset options fall back to the caller's default.
	assert.Equal(t, "unknown", store.GetOption(config.OptBackupLocation, "unknown"))

	// Flags override config values.
	store.SetOption(config.OptBackupDir, "/flag/override")
	assert.Equal(t, "/flag/override", store.GetOption(config.OptBackupDir, ""))
}

// 🧪 TestStoreNilConfig tests that a nil config yields an empty store
func TestStoreNilConfig(t *testing.T) {
	store := config.NewStore(nil)
	assert.Equal(t, "fallback", store.GetOption(config.OptDatabase, "fallback"))
}

// 🧪 TestStoreContext tests context get/set round trips
func TestStoreContext(t *testing.T) {
	store := config.NewStore(nil)

	assert.Equal(t, "default", store.GetContext("missing", "default"))
	assert.Nil(t, store.GetContext("missing", nil))

	store.SetContext("backup-dir-spec", "/planned/path")
	assert.Equal(t, "/planned/path", store.GetContext("backup-dir-spec", ""))

	// Later writes win.
	store.SetContext("backup-dir-spec", "/replanned")
	assert.Equal(t, "/replanned", store.GetContext("backup-dir-spec", ""))
}
