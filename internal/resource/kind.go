// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resource

import "fmt"

// Kind is the closed set of resource types the client maps.
type Kind int

const (
	KindUnknown Kind = iota
	KindRepo
	KindUser
	KindGist
	KindGistFile
	KindGistHistory
	KindGistComment
	KindComment
	KindCommit
)

// Kinds lists every mapped Kind.
var Kinds = []Kind{
	KindRepo,
	KindUser,
	KindGist,
	KindGistFile,
	KindGistHistory,
	KindGistComment,
	KindComment,
	KindCommit,
}

func (k Kind) String() string {
	switch k {
	case KindRepo:
		return "repo"
	case KindUser:
		return "user"
	case KindGist:
		return "gist"
	case KindGistFile:
		return "gist_file"
	case KindGistHistory:
		return "gist_history"
	case KindGistComment:
		return "gist_comment"
	case KindComment:
		return "comment"
	case KindCommit:
		return "commit"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IdentityKey is the attribute that identifies a resource of this Kind.
func (k Kind) IdentityKey() string {
	switch k {
	case KindGistFile:
		return "filename"
	case KindGistHistory:
		return "version"
	case KindCommit:
		return "sha"
	case KindRepo, KindUser, KindGist, KindGistComment, KindComment:
		return "id"
	default:
		return ""
	}
}

// ParseKind returns the Kind named s, as produced by String.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown resource kind %q", s)
}
