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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/octopi/internal/github"
	"github.com/sirseerhq/octopi/internal/request"
	"github.com/sirseerhq/octopi/internal/resource"
)

func newRepoCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Inspect repositories and their commit comments",
	}
	cmd.AddCommand(
		newRepoGetCommand(a),
		newRepoCommentsCommand(a),
		newRepoCommitsCommand(a),
		newRepoCommentCreateCommand(a),
		newRepoCommentGetCommand(a),
		newRepoCommentUpdateCommand(a),
		newRepoCommentDeleteCommand(a),
	)
	return cmd
}

func newRepoGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <owner>/<repo>",
		Short: "Print a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.client.FindRepo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return write(a, repo)
		},
	}
}

func newRepoCommentsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comments <owner>/<repo>",
		Short: "List a repository's commit comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.client.FindRepo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			comments, err := repo.Comments(cmd.Context())
			if err != nil {
				return err
			}
			return write(a, comments.Items()...)
		},
	}
}

func newRepoCommitsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "commits <owner>/<repo>",
		Short: "List a repository's commits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.client.FindRepo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			commits, err := repo.Commits(cmd.Context())
			if err != nil {
				return err
			}
			return write(a, commits.Items()...)
		},
	}
}

func newRepoCommentCreateCommand(a *app) *cobra.Command {
	var (
		commitID string
		body     string
		path     string
		line     int
	)

	cmd := &cobra.Command{
		Use:   "comment-create <owner>/<repo>",
		Short: "Comment on a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.client.FindRepo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			comments, err := repo.Comments(cmd.Context())
			if err != nil {
				return err
			}

			params := request.NewParams("body", body, "commit_id", commitID)
			if path != "" {
				params.Set("path", path)
			}
			if cmd.Flags().Changed("line") {
				params.Set("line", line)
			}
			comment, err := comments.Create(cmd.Context(), params)
			if err != nil {
				return err
			}
			return write(a, comment)
		},
	}

	cmd.Flags().StringVar(&commitID, "commit", "", "SHA of the commit to comment on")
	cmd.Flags().StringVar(&body, "body", "", "Comment text")
	cmd.Flags().StringVar(&path, "path", "", "File the comment refers to")
	cmd.Flags().IntVar(&line, "line", 0, "Line in --path the comment refers to")
	_ = cmd.MarkFlagRequired("commit")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

// findComment looks up comment id of repository args[0].
func findComment(a *app, cmd *cobra.Command, args []string) (*github.Comment, error) {
	id := resource.Identity(args[1])
	if id.IsZero() {
		return nil, fmt.Errorf("empty comment id")
	}
	return a.client.FindComment(cmd.Context(), args[0], id)
}

func newRepoCommentGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <owner>/<repo> <id>",
		Short: "Print one commit comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comment, err := findComment(a, cmd, args)
			if err != nil {
				return err
			}
			return write(a, comment)
		},
	}
}

func newRepoCommentUpdateCommand(a *app) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "comment-update <owner>/<repo> <id>",
		Short: "Replace the text of a commit comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comment, err := findComment(a, cmd, args)
			if err != nil {
				return err
			}
			updated, err := comment.Update(cmd.Context(), body)
			if err != nil {
				return err
			}
			return write(a, updated)
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "New comment text")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func newRepoCommentDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comment-delete <owner>/<repo> <id>",
		Short: "Delete a commit comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comment, err := findComment(a, cmd, args)
			if err != nil {
				return err
			}
			if err := comment.Delete(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "Deleted comment %s\n", comment.ID())
			return nil
		},
	}
}
