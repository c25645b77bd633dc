package tx

import (
	"github.com/chapool/treasury-api/internal/util/command"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("tx",
		newCheck(),
	)
}
