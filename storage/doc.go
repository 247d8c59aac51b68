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


// Package storage provides the persistence layer for index generations.
//
// A Generation is the unit of persistence: the vector index, the
// row-aligned job metadata, and the model fingerprint always travel
// together. The index and metadata must come from the identical build
// pass; loading them from mismatched generations is a fatal consistency
// violation.
//
// # Constructor Return Type Pattern
//
// Public constructors return the GenerationStore interface to enforce
// abstraction and allow alternative backends:
//
//	store, err := badger.NewStore(backend)  // returns storage.GenerationStore
//
// # Thread Safety
//
// All store implementations must be thread-safe. SaveGeneration writes the
// manifest last, so a crashed or concurrent partial write is never loadable.
package storage
