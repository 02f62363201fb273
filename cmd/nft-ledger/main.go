// Command nft-ledger runs the token ledger contract against a local
// Badger-backed runtime. It is a sandbox shell for the contract: every
// invocation opens the database, executes a single call as the
// configured signer and prints the result as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
	"github.com/qstn-network/nft-contract/nft"
	"github.com/qstn-network/nft-contract/runtime"
)

// sandboxFunds is the balance every signer account gets in the local
// sandbox; deposits are still metered, they just never run out.
const sandboxFunds = 1 << 40

var (
	flagDataDir  string
	flagContract string
	flagSigner   string
	flagDeposit  uint64
	flagVerbose  bool
)

func main() {
	root := &cobra.Command{
		Use:           "nft-ledger",
		Short:         "local sandbox for the token ledger contract",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flagDataDir, "data", "d", "~/.nft-ledger/data", "database directory path")
	pf.StringVar(&flagContract, "contract", "nft.ledger", "contract account id")
	pf.StringVar(&flagSigner, "signer", "owner", "signer account id")
	pf.Uint64Var(&flagDeposit, "deposit", 0, "deposit attached to the call")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log receipt execution")

	root.AddCommand(
		initCmd(), mintCmd(), transferCmd(), burnCmd(),
		approveCmd(), revokeCmd(), revokeAllCmd(),
		tokenCmd(), tokensCmd(), tokensOfCmd(), supplyCmd(), balanceOfCmd(),
		policyCmd(), whitelistCmd(),
	)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// invoke opens the sandbox, performs a single contract call and
// decodes its result into out (skipped for nil out).
func invoke(method string, args interface{}, out interface{}) error {
	dir := flagDataDir
	if strings.HasPrefix(dir, "~/") {
		usr, err := user.Current()
		if err != nil {
			return err
		}
		dir = filepath.Join(usr.HomeDir, dir[2:])
	}
	db, err := runtime.OpenBadger(dir)
	if err != nil {
		return err
	}
	defer db.Close()

	log := logrus.New()
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	rt := runtime.NewRuntime(log)
	contract := host.AccountID(flagContract)
	if err := rt.Register(contract, nft.Methods(), db.Storage(contract)); err != nil {
		return err
	}
	rt.NewAccount(host.AccountID(flagSigner), sandboxFunds)

	inv := runtime.NewInvoker(rt, contract, host.AccountID(flagSigner)).WithDeposit(flagDeposit)
	data, err := inv.Call(method, args)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return common.Unmarshal(data, out)
}

func run(method string, args interface{}, out interface{}) error {
	if err := invoke(method, args, out); err != nil {
		return err
	}
	if out != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	fmt.Println("ok")
	return nil
}

func initCmd() *cobra.Command {
	var owner, name, symbol, icon, baseURI string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "initialize the contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			md := nft.DefaultMetadata()
			if name != "" {
				md.Name = name
			}
			if symbol != "" {
				md.Symbol = symbol
			}
			md.Icon = icon
			md.BaseURI = baseURI
			return run(nft.MethodDeploy, nft.DeployArgs{
				Owner:    host.AccountID(owner),
				Metadata: md,
			}, nil)
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "owner", "designated contract owner account")
	cmd.Flags().StringVar(&name, "name", "", "collection name")
	cmd.Flags().StringVar(&symbol, "symbol", "", "collection symbol")
	cmd.Flags().StringVar(&icon, "icon", "", "collection icon data URL")
	cmd.Flags().StringVar(&baseURI, "base-uri", "", "base URI of token media")
	return cmd
}

func mintCmd() *cobra.Command {
	var title, description, media string
	cmd := &cobra.Command{
		Use:   "mint <token-id> <receiver>",
		Short: "mint a new token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out nft.Token
			return run(nft.MethodMint, nft.MintArgs{
				TokenID:  args[0],
				Receiver: host.AccountID(args[1]),
				Metadata: nft.TokenMetadata{
					Title:       title,
					Description: description,
					Media:       media,
				},
			}, &out)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "token title")
	cmd.Flags().StringVar(&description, "description", "", "token description")
	cmd.Flags().StringVar(&media, "media", "", "token media URL")
	return cmd
}

func transferCmd() *cobra.Command {
	var approvalID uint64
	var memo string
	cmd := &cobra.Command{
		Use:   "transfer <token-id> <receiver>",
		Short: "transfer a token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ta := nft.TransferArgs{
				Receiver: host.AccountID(args[1]),
				TokenID:  args[0],
				Memo:     memo,
			}
			if cmd.Flags().Changed("approval-id") {
				ta.ApprovalID = &approvalID
			}
			return run(nft.MethodTransfer, ta, nil)
		},
	}
	cmd.Flags().Uint64Var(&approvalID, "approval-id", 0, "approval id the transfer relies on")
	cmd.Flags().StringVar(&memo, "memo", "", "transfer memo")
	return cmd
}

func burnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "burn <token-id>",
		Short: "burn a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(nft.MethodBurn, nft.TokenArgs{TokenID: args[0]}, nil)
		},
	}
}

func approveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <token-id> <account>",
		Short: "grant transfer approval",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id uint64
			return run(nft.MethodApprove, nft.ApprovalArgs{
				TokenID: args[0],
				Account: host.AccountID(args[1]),
			}, &id)
		},
	}
}

func revokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <token-id> <account>",
		Short: "revoke a transfer approval",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(nft.MethodRevoke, nft.ApprovalArgs{
				TokenID: args[0],
				Account: host.AccountID(args[1]),
			}, nil)
		},
	}
}

func revokeAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke-all <token-id>",
		Short: "revoke all transfer approvals of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(nft.MethodRevokeAll, nft.TokenArgs{TokenID: args[0]}, nil)
		},
	}
}

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <token-id>",
		Short: "show a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out *nft.Token
			return run(nft.MethodGetToken, nft.TokenArgs{TokenID: args[0]}, &out)
		},
	}
}

func tokensCmd() *cobra.Command {
	var from uint64
	var limit int
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "list tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []nft.Token
			return run(nft.MethodTokens, nft.PageArgs{FromIndex: from, Limit: limit}, &out)
		},
	}
	cmd.Flags().Uint64Var(&from, "from", 0, "pagination offset")
	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	return cmd
}

func tokensOfCmd() *cobra.Command {
	var from uint64
	var limit int
	cmd := &cobra.Command{
		Use:   "tokens-of <owner>",
		Short: "list tokens of an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []nft.Token
			return run(nft.MethodTokensOf, nft.OwnerPageArgs{
				Owner:     host.AccountID(args[0]),
				FromIndex: from,
				Limit:     limit,
			}, &out)
		},
	}
	cmd.Flags().Uint64Var(&from, "from", 0, "pagination offset")
	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	return cmd
}

func supplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "supply",
		Short: "show total supply",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out uint64
			return run(nft.MethodTotalSupply, nil, &out)
		},
	}
}

func balanceOfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance-of <owner>",
		Short: "show the number of tokens owned by an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out uint64
			return run(nft.MethodBalanceOf, nft.OwnerArgs{Owner: host.AccountID(args[0])}, &out)
		},
	}
}

func policyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "show or change the mint policy",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "show the current mint policy",
			RunE: func(cmd *cobra.Command, args []string) error {
				var out string
				return run(nft.MethodMintPolicy, nil, &out)
			},
		},
		&cobra.Command{
			Use:   "set <closed|open|whitelisted>",
			Short: "transition the mint policy",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(nft.MethodSetMintPolicy, nft.PolicyArgs{Policy: args[0]}, nil)
			},
		},
	)
	return cmd
}

func whitelistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whitelist",
		Short: "manage the mint whitelist",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <account>",
			Short: "add an account to the whitelist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(nft.MethodAddWhitelistAccount, nft.AccountArgs{Account: host.AccountID(args[0])}, nil)
			},
		},
		&cobra.Command{
			Use:   "remove <account>",
			Short: "remove the first matching whitelist entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(nft.MethodRemoveWhitelistAccount, nft.AccountArgs{Account: host.AccountID(args[0])}, nil)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "list whitelist entries",
			RunE: func(cmd *cobra.Command, args []string) error {
				var out []host.AccountID
				return run(nft.MethodWhitelistAccounts, nil, &out)
			},
		},
	)
	return cmd
}
