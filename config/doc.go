// Copyright 2025 Poiesic Systems
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

// Package config holds the settings shared by every stemma command.
//
// A Config starts from DefaultConfig, may be overlaid by a YAML file with
// Load, and is then adjusted by command line flags through the With*
// options. Validate checks the result against the struct tags. Reference
// witness names are not checked here: a name the table does not hold falls
// back to the default reference when the table is loaded.
package config
