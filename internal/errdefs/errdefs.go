// Copyright 2025 Emiliano Spinella (eminwux)
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
//
// SPDX-License-Identifier: Apache-2.0

package errdefs

import "errors"

var (
	ErrFinalized           = errors.New("builder already finalized")
	ErrSinkInstalled       = errors.New("log sink already installed")
	ErrUnknownPolicy       = errors.New("unknown transform policy")
	ErrConfig              = errors.New("config error")
	ErrInvalidFlag         = errors.New("invalid flag usage")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrTooManyArguments    = errors.New("too many arguments; only one profile name is allowed")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrStdinStat           = errors.New("failed to stat stdin")
)
