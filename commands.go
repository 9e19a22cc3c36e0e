package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
	recordsx "github.com/tanpawarit/Chative-Learning-Agents/agent/records"
)

func newAskCmd() *cobra.Command {
	var userID, courseID, lessonID string

	cmd := &cobra.Command{
		Use:   "ask [query]",
		Short: "Send one query to the agents and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.manager.Handle(cmd.Context(), contractx.Request{
				UserID:   userID,
				Query:    strings.Join(args, " "),
				CourseID: courseID,
				LessonID: lessonID,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&userID, "user", recordsx.SeedStudentID, "User id sending the query")
	cmd.Flags().StringVar(&courseID, "course", "", "Course id for context")
	cmd.Flags().StringVar(&lessonID, "lesson", "", "Lesson id for context")
	return cmd
}

func newAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the registered agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			return printJSON(cmd.OutOrStdout(), a.manager.ListResponders())
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load demo users, courses and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := recordsx.Seed(cmd.Context(), db, time.Now()); err != nil {
				return err
			}
			log.Info().Msg("database seeded")
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var userID string
	var limit int
	var clearCache bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the latest agent interactions of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(userID) == "" {
				return errors.New("--user is required")
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if clearCache {
				if a.cache == nil {
					return errors.New("redis interaction cache is not enabled")
				}
				if err := a.cache.Clear(cmd.Context(), userID); err != nil {
					return fmt.Errorf("clear history cache: %w", err)
				}
				log.Info().Str("user_id", userID).Msg("interaction cache cleared")
				return nil
			}

			interactions, err := a.manager.History(cmd.Context(), userID, limit)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), interactions)
		},
	}

	cmd.Flags().StringVar(&userID, "user", recordsx.SeedStudentID, "User id")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of interactions")
	cmd.Flags().BoolVar(&clearCache, "clear-cache", false, "Drop the cached interactions of the user from redis")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
