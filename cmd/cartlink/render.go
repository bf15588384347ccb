package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mhizterpaul/cartlink/internal/store"
	"github.com/spf13/cobra"
)

// printJSON writes v to the command's stdout, indented.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// settle waits for res and prints the slice state it left behind. The
// operation's failure, if any, is returned after the state is printed.
func settle[S, R any](cmd *cobra.Command, s *store.Slice[S], res *store.Result[R]) error {
	_, err := res.Wait(cmd.Context())
	if perr := printJSON(cmd, s.State()); perr != nil {
		return perr
	}
	return err
}

// result waits for res and prints the operation's own result instead of the
// slice. Used for mutations, which leave their slice unchanged.
func result[R any](cmd *cobra.Command, res *store.Result[R]) error {
	v, err := res.Wait(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd, v)
}

func idArg(args []string, i int, name string) (int64, error) {
	v, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", name, args[i])
	}
	return v, nil
}
