package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"retention-engine/internal/model"
)

func newEvaluateCmd(opts *rootOptions) *cobra.Command {
	var (
		file   string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a hearing result file and print the retention decision",
		Long: `Evaluate reads an evaluation request (hearing, defendants, optional
remitResultIds) as JSON from --file, or stdin when the file is "-", and prints
the evaluation response.`,
		Example: `  retention-engine evaluate --file hearing.json --pretty
  cat hearing.json | retention-engine evaluate --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			var req model.EvaluationRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("invalid request in %s: %w", file, err)
			}
			if len(req.Defendants) == 0 {
				return fmt.Errorf("invalid request in %s: at least one defendant is required", file)
			}

			svc, err := buildServices(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			resp := svc.engine.Process(cmd.Context(), &req)

			var out []byte
			if pretty {
				out, err = json.MarshalIndent(resp, "", "  ")
			} else {
				out, err = json.Marshal(resp)
			}
			if err != nil {
				return fmt.Errorf("encode response: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if resp.EvaluationMetadata.EvaluationOutcome != model.OutcomeSuccess {
				return fmt.Errorf("evaluation %s finished with outcome %s",
					resp.EvaluationMetadata.EvaluationID, resp.EvaluationMetadata.EvaluationOutcome)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "evaluation request JSON file, - for stdin")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	cmd.MarkFlagRequired("file")
	return cmd
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return data, nil
}
