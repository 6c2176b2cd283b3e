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

package config

import (
	"sync"
)

// Option names recognized by the store. Flags and config file values land
// under the same names, so lookups have one spelling.
const (
	OptBackupDir      = "backup-dir"
	OptBackupLocation = "backup-location"
	OptProtectedRoot  = "protected-root"
	OptDatabase       = "database"
	OptTempDir        = "temp-dir"
)

// 🗃️ Store is the process-scoped option and context store. Options are
// string settings seeded from the config file and overridden by flags;
// context values are arbitrary per-run state (e.g. the memoized backup
// directory spec). Both live for the process lifetime.
type Store struct {
	mu      sync.Mutex
	options map[string]string
	context map[string]any
}

// 🏭 NewStore seeds a store from a loaded config. A nil config yields an
// empty store.
func NewStore(cfg *Config) *Store {
	s := &Store{
		options: map[string]string{},
		context: map[string]any{},
	}
	if cfg != nil {
		for name, value := range map[string]string{
			OptBackupDir:      cfg.BackupDir,
			OptBackupLocation: cfg.BackupLocation,
			OptProtectedRoot:  cfg.ProtectedRoot,
			OptDatabase:       cfg.Database,
			OptTempDir:        cfg.TempDir,
		} {
			if value != "" {
				s.options[name] = value
			}
		}
	}
	return s
}

// 🎯 GetOption returns the option's value, or def when unset or empty.
func (s *Store) GetOption(name, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.options[name]; ok && v != "" {
		return v
	}
	return def
}

// 📝 SetOption sets an option, overriding any config file value.
func (s *Store) SetOption(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[name] = value
}

// 🎯 GetContext returns the context value under key, or def when unset.
func (s *Store) GetContext(key string, def any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.context[key]; ok {
		return v
	}
	return def
}

// 📝 SetContext stores a context value under key.
func (s *Store) SetContext(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context[key] = value
}
