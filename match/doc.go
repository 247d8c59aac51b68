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


// Package match provides text-based role classification and skill extraction.
//
// Both the Classifier and the SkillExtractor are built once from versioned
// keyword tables and are pure after construction, so detection logic can be
// tuned without touching the scoring code that consumes it.
//
// Matching is substring membership over lower-cased text. A multi-word
// keyword like "spring boot" matches as a phrase; a short keyword can
// over-match inside unrelated words. That approximation is accepted
// behavior, not a bug.
package match
