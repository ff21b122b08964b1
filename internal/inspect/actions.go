package inspect

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/film-review-explorer/internal/common"
	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
)

// TypesAction prints the set of value types found in every column.
func TypesAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.BuildConfig(c)
	if err != nil {
		return err
	}

	d, _, err := common.LoadInputs(logger, cfg)
	if err != nil {
		return err
	}

	return common.WriteOutput(os.Stdout, dataset.ColumnTypes(d), c.String("format"))
}
