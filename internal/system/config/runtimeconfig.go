/*
 * Copyright (c) 2025, the Signet project.
 *
 * The Signet project licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import "sync"

// SignetRuntime holds the runtime configuration for the Signet server.
type SignetRuntime struct {
	SignetHome string `yaml:"signet_home"`
	Config     Config `yaml:"config"`
}

var (
	runtimeConfig *SignetRuntime
	once          sync.Once
)

// InitializeSignetRuntime initializes the SignetRuntime configuration.
func InitializeSignetRuntime(signetHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &SignetRuntime{
			SignetHome: signetHome,
			Config:     *config,
		}
	})

	return nil
}

// GetSignetRuntime returns the SignetRuntime configuration.
func GetSignetRuntime() *SignetRuntime {
	if runtimeConfig == nil {
		panic("SignetRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetSignetRuntime resets the SignetRuntime.
// This should only be used in tests to reset the singleton state.
func ResetSignetRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
