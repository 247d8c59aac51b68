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


// Package search ranks jobs against resume text.
//
// The Engine implements a multi-stage pipeline:
//   - role resolution (caller-supplied or detected from the query)
//   - query embedding, normalized identically to build-time embeddings
//   - role-specific title pre-filtering
//   - oversampled nearest-neighbor retrieval
//   - composite scoring blending cosine similarity and skill overlap
//   - deduplication, adaptive thresholding, and final ranking
//
// The engine is stateless across calls: it reads one immutable generation
// per search and never mutates shared state, so any number of searches may
// run concurrently against the same generation.
package search
