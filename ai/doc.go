// Copyright 2025 TalentGrid Systems
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


// Package ai defines the embedding provider abstraction.
//
// The embedding model is an external collaborator: the rest of the system
// treats it as an opaque function from text to a fixed-length vector.
// Implementations live in subpackages:
//
//   - ai/openai: OpenAI-compatible embedding APIs (Ollama, LocalAI, vLLM)
//   - ai/mock: deterministic test doubles
//
// Embedding calls are bounded by the configured request timeout so a stuck
// provider can never block a build or a search indefinitely.
package ai
