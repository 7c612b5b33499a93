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

	octoerrors "github.com/sirseerhq/octopi/internal/errors"
	"github.com/sirseerhq/octopi/internal/giterror"
	"github.com/sirseerhq/octopi/internal/session"
)

func newLoginCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify credentials and save them for later commands",
		Long: `Verify the credential given by --token or --username/--password (or the
environment variables named in the config file) against GitHub, then save it to
the session file so later commands run authenticated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.explicit {
				return giterror.WithUserAction(
					octoerrors.NotAuthenticated("login"),
					"pass --token, or --username with --password")
			}

			login, err := a.client.Viewer(cmd.Context())
			if err != nil {
				if giterror.NewInspector().IsAuthError(err) {
					return giterror.WithUserAction(err, "check that the token or password is current")
				}
				return err
			}

			creds, _ := a.auth.Credentials()
			if err := session.Save(session.New(creds, login), a.cfg.SessionPath()); err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "Logged in as %s\n", login)
			return nil
		},
	}
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := session.Delete(a.cfg.SessionPath()); err != nil {
				return err
			}
			a.auth.Clear()
			fmt.Fprintln(a.stderr, "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.client.CurrentUser(cmd.Context())
			if err != nil {
				if giterror.NewInspector().IsAuthError(err) {
					return giterror.WithUserAction(err, "run octopi login first")
				}
				return err
			}
			return write(a, user)
		},
	}
}
