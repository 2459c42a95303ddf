package main

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"et21/internal/auth"
	"et21/internal/store"
	"github.com/spf13/cobra"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login credentials",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <email>",
			Short: "Create a credential, prompting for the password",
			Args:  cobra.ExactArgs(1),
			RunE:  a.userCreate,
		},
		&cobra.Command{
			Use:   "passwd <email>",
			Short: "Reset the password of an existing credential",
			Args:  cobra.ExactArgs(1),
			RunE:  a.userPasswd,
		},
		&cobra.Command{
			Use:   "delete <email>",
			Short: "Delete a credential",
			Args:  cobra.ExactArgs(1),
			RunE:  a.userDelete,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List every stored email",
			Args:  cobra.NoArgs,
			RunE:  a.userList,
		},
	)
	return cmd
}

func parseEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", fmt.Errorf("invalid email %q", s)
	}
	return s, nil
}

func (a *app) userCreate(cmd *cobra.Command, args []string) error {
	email, err := parseEmail(args[0])
	if err != nil {
		return err
	}
	pw, err := promptNewPassword()
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(pw)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
	defer cancel()
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.CreateCredential(ctx, email, hash); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("user %q already exists", email)
		}
		return fmt.Errorf("create user: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: user created\n  email: %s\n", email)
	return nil
}

func (a *app) userPasswd(cmd *cobra.Command, args []string) error {
	email := strings.TrimSpace(args[0])
	pw, err := promptNewPassword()
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(pw)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
	defer cancel()
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SetPassword(ctx, email, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("user %q not found", email)
		}
		return fmt.Errorf("set password: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: password updated for %s\n", email)
	return nil
}

func (a *app) userDelete(cmd *cobra.Command, args []string) error {
	email := strings.TrimSpace(args[0])

	ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
	defer cancel()
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteCredential(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("user %q not found", email)
		}
		return fmt.Errorf("delete user: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: user %s deleted\n", email)
	return nil
}

func (a *app) userList(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
	defer cancel()
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	emails, err := s.ListCredentials(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, e := range emails {
		fmt.Fprintln(cmd.OutOrStdout(), e)
	}
	return nil
}
