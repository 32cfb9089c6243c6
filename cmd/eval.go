package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/implint/implint"
)

var evalPkg string

var evalCmd = &cobra.Command{
	Use:   "eval 'TYPE: EXPR'",
	Short: "Evaluate a single capability expression against a package",
	Long: `Evaluates one assertion at the package scope of the given package.
Example) implint eval -p ./mypkg '*bytes.Buffer: io.Writer & fmt.Stringer'`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("error: Please provide exactly one 'TYPE: EXPR' argument")
			os.Exit(1)
		}
		setupColor()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := implint.New(configPath(), logger)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		res, err := engine.Eval(ctx, evalPkg, args[0])
		if err != nil {
			logger.Error("Evaluation failed", zap.Error(err))
			os.Exit(1)
		}

		fmt.Printf("%s: %t\n", res.Type, res.Value)
		for _, lv := range res.Leaves {
			fmt.Printf("  %s = %t\n", lv.Leaf.String(), lv.Value)
		}
		if !res.Value {
			os.Exit(1)
		}
	},
}

func init() {
	evalCmd.Flags().StringVarP(&evalPkg, "pkg", "p", ".", "Package pattern providing the scope")
}
