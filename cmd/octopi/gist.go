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

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/octopi/internal/github"
	"github.com/sirseerhq/octopi/internal/request"
	"github.com/sirseerhq/octopi/internal/resource"
)

func newGistCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gist",
		Short: "Create, inspect and manage gists",
	}
	cmd.AddCommand(
		newGistGetCommand(a),
		newGistListCommand(a),
		newGistMineCommand(a),
		newGistStarredListCommand(a),
		newGistCreateCommand(a),
		newGistUpdateCommand(a),
		newGistDeleteCommand(a),
		newGistStarCommand(a, true),
		newGistStarCommand(a, false),
		newGistIsStarredCommand(a),
		newGistCommentsCommand(a),
		newGistCommentCommand(a),
		newGistFilesCommand(a),
		newGistHistoryCommand(a),
		newGistForkCommand(a),
	)
	return cmd
}

// gistRunE fetches the gist named by args[0] before calling fn.
func gistRunE(a *app, fn func(ctx context.Context, gist *github.Gist) error) func(*cobra.Command, []string) error {
	return protectedGistRunE(a, "", fn)
}

// protectedGistRunE is gistRunE for commands that need credentials. A missing
// credential fails before the gist is fetched.
func protectedGistRunE(a *app, operation string, fn func(ctx context.Context, gist *github.Gist) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if operation != "" {
			if err := a.auth.Require(operation); err != nil {
				return err
			}
		}
		gist, err := a.client.FindGist(cmd.Context(), resource.Identity(args[0]))
		if err != nil {
			return err
		}
		return fn(cmd.Context(), gist)
	}
}

// readFiles loads each path into the "files" parameter shape, keyed by base
// name.
func readFiles(paths []string) (*request.Params, error) {
	files := request.NewParams()
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		files.Set(filepath.Base(path), request.NewParams("content", string(content)))
	}
	return files, nil
}

func newGistGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a gist",
		Args:  cobra.ExactArgs(1),
		RunE: gistRunE(a, func(_ context.Context, gist *github.Gist) error {
			return write(a, gist)
		}),
	}
}

func newGistListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <login>",
		Short: "List a user's public gists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gists, err := a.client.GistsForUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return write(a, gists.Items()...)
		},
	}
}

func newGistMineCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the authenticated user's gists, private ones included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gists, err := a.client.MyGists(cmd.Context())
			if err != nil {
				return err
			}
			return write(a, gists.Items()...)
		},
	}
}

func newGistStarredListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "starred",
		Short: "List the gists the authenticated user starred",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gists, err := a.client.StarredGists(cmd.Context())
			if err != nil {
				return err
			}
			return write(a, gists.Items()...)
		},
	}
}

func newGistCreateCommand(a *app) *cobra.Command {
	var (
		description string
		private     bool
		paths       []string
	)

	cmd := &cobra.Command{
		Use:   "create --file <path> [--file <path>...]",
		Short: "Create a gist from local files",
		Long: `Create a gist from one or more local files. Without credentials the gist is
created anonymously. Gists are public unless --private is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := readFiles(paths)
			if err != nil {
				return err
			}

			params := request.NewParams()
			if description != "" {
				params.Set("description", description)
			}
			params.Set("files", files)
			if private {
				params.Set("public", false)
			}

			gist, err := a.client.CreateGist(cmd.Context(), params)
			if err != nil {
				return err
			}
			return write(a, gist)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Gist description")
	cmd.Flags().BoolVar(&private, "private", false, "Create a secret gist")
	cmd.Flags().StringArrayVarP(&paths, "file", "f", nil, "File to include (repeatable)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newGistUpdateCommand(a *app) *cobra.Command {
	var (
		description string
		paths       []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a gist's description or files",
		Args:  cobra.ExactArgs(1),
		RunE: gistRunE(a, func(ctx context.Context, gist *github.Gist) error {
			params := request.NewParams()
			if description != "" {
				params.Set("description", description)
			}
			if len(paths) > 0 {
				files, err := readFiles(paths)
				if err != nil {
					return err
				}
				params.Set("files", files)
			}
			if params.Len() == 0 {
				return fmt.Errorf("nothing to update: pass --description or --file")
			}

			updated, err := gist.Update(ctx, params)
			if err != nil {
				return err
			}
			return write(a, updated)
		}),
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringArrayVarP(&paths, "file", "f", nil, "File to add or replace (repeatable)")
	return cmd
}

func newGistDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a gist",
		Args:  cobra.ExactArgs(1),
		RunE: protectedGistRunE(a, "delete_gist", func(ctx context.Context, gist *github.Gist) error {
			if err := gist.Delete(ctx); err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "Deleted gist %s\n", gist.ID())
			return nil
		}),
	}
}

func newGistStarCommand(a *app, star bool) *cobra.Command {
	use, short, op := "star <id>", "Star a gist", "star_gist"
	if !star {
		use, short, op = "unstar <id>", "Remove the star from a gist", "unstar_gist"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: protectedGistRunE(a, op, func(ctx context.Context, gist *github.Gist) error {
			if star {
				return gist.Star(ctx)
			}
			return gist.Unstar(ctx)
		}),
	}
}

// starredRecord is what "gist is-starred" prints.
type starredRecord struct {
	ID      string `json:"id"`
	Starred bool   `json:"starred"`
}

func newGistIsStarredCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "is-starred <id>",
		Aliases: []string{"starred?"},
		Short:   "Report whether the authenticated user starred a gist",
		Args:    cobra.ExactArgs(1),
		RunE: protectedGistRunE(a, "check_gist_star", func(ctx context.Context, gist *github.Gist) error {
			starred, err := gist.Starred(ctx)
			if err != nil {
				return err
			}
			return write(a, starredRecord{ID: gist.ID(), Starred: starred})
		}),
	}
}

func newGistCommentsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comments <id>",
		Short: "List a gist's comments",
		Args:  cobra.ExactArgs(1),
		RunE: gistRunE(a, func(ctx context.Context, gist *github.Gist) error {
			comments, err := gist.Comments(ctx)
			if err != nil {
				return err
			}
			return write(a, comments.Items()...)
		}),
	}
}

func newGistCommentCommand(a *app) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "comment <id>",
		Short: "Comment on a gist",
		Args:  cobra.ExactArgs(1),
		RunE: protectedGistRunE(a, "create_gist_comment", func(ctx context.Context, gist *github.Gist) error {
			comments, err := gist.Comments(ctx)
			if err != nil {
				return err
			}
			comment, err := comments.Create(ctx, request.NewParams("body", body))
			if err != nil {
				return err
			}
			return write(a, comment)
		}),
	}

	cmd.Flags().StringVar(&body, "body", "", "Comment text")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func newGistFilesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "files <id>",
		Short: "List a gist's files with their content",
		Args:  cobra.ExactArgs(1),
		RunE: gistRunE(a, func(_ context.Context, gist *github.Gist) error {
			return write(a, gist.Files()...)
		}),
	}
}

func newGistHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "List a gist's revisions",
		Args:  cobra.ExactArgs(1),
		RunE: gistRunE(a, func(_ context.Context, gist *github.Gist) error {
			return write(a, gist.History()...)
		}),
	}
}

func newGistForkCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fork <id>",
		Short: "Fork a gist into the authenticated account",
		Args:  cobra.ExactArgs(1),
		RunE: protectedGistRunE(a, "fork_gist", func(ctx context.Context, gist *github.Gist) error {
			fork, err := gist.Fork(ctx)
			if err != nil {
				return err
			}
			return write(a, fork)
		}),
	}
}
