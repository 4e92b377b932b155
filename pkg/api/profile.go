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

package api

// apiVersion: sevlog/v1beta1
// kind: FilterProfile

type (
	Version string
	Kind    string
)

const (
	APIVersionV1Beta1 Version = "sevlog/v1beta1"
	KindFilterProfile Kind    = "FilterProfile"
)

// FilterProfileDoc models one YAML document containing a FilterProfile.
type FilterProfileDoc struct {
	APIVersion Version               `json:"apiVersion" yaml:"apiVersion"`
	Kind       Kind                  `json:"kind"       yaml:"kind"`
	Metadata   FilterProfileMetadata `json:"metadata"   yaml:"metadata"`
	Spec       FilterProfileSpec     `json:"spec"       yaml:"spec"`
}

type FilterProfileMetadata struct {
	Name        string            `json:"name"                  yaml:"name"`
	Labels      map[string]string `json:"labels,omitempty"      yaml:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// FilterProfileSpec selects the transform policy and, optionally, the
// warning tag it prepends. Policy is one of "encode", "rewrite", "tag".
type FilterProfileSpec struct {
	Policy string `json:"policy"        yaml:"policy"`
	Tag    string `json:"tag,omitempty" yaml:"tag,omitempty"`
}
