package main

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/jasmine-eth/go-sdk/pkg/logger"
	"github.com/jasmine-eth/go-sdk/pkg/sdk"
	"github.com/jasmine-eth/go-sdk/pkg/txExecutor"
	"github.com/jasmine-eth/go-sdk/pkg/txSigner"
	"github.com/jasmine-eth/go-sdk/pkg/util"
)

func main() {
	// Optional .env in the working directory; flags and env vars win.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "jasmine",
		Usage: "Jasmine TFC token operations",
		Description: `The jasmine CLI drives the Jasmine Ethereum SDK: query balances, transfer
ETH, deploy the TFC manager contract and claim TFC tokens with an
off-chain-issued voucher.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug logging",
				EnvVars: []string{"DEBUG"},
			},
			&cli.StringFlag{
				Name:     "endpoint",
				Aliases:  []string{"e"},
				Usage:    "Ethereum RPC endpoint (http(s) or ws(s))",
				Required: true,
				EnvVars:  []string{"RPC_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "private-key",
				Usage:   "Private key for transaction signing (hex format, with or without 0x prefix)",
				EnvVars: []string{"PRIVATE_KEY"},
			},
			&cli.StringFlag{
				Name:    "kms-key-id",
				Usage:   "AWS KMS key ID for transaction signing",
				EnvVars: []string{"KMS_KEY_ID"},
			},
			&cli.StringFlag{
				Name:    "kms-region",
				Usage:   "AWS region of the KMS signing key",
				Value:   "us-east-1",
				EnvVars: []string{"KMS_REGION"},
			},
			&cli.StringFlag{
				Name:    "gas-price",
				Usage:   "Fixed gas price in wei (defaults to the node-suggested price)",
				EnvVars: []string{"GAS_PRICE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "balance",
				Aliases:   []string{"b"},
				Usage:     "Print the ETH balance of one or more addresses",
				ArgsUsage: "<address> [address...]",
				Action:    balanceAction,
			},
			{
				Name:      "transfer",
				Aliases:   []string{"t"},
				Usage:     "Transfer ETH to a recipient",
				ArgsUsage: "<recipient> <amount-ether>",
				Action:    transferAction,
			},
			{
				Name:   "deploy-manager",
				Usage:  "Deploy a new TFC manager contract",
				Action: deployManagerAction,
			},
			{
				Name:  "claim",
				Usage: "Claim TFC tokens with an off-chain voucher",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "manager",
						Usage:    "TFC manager contract address",
						Required: true,
						EnvVars:  []string{"MANAGER_ADDRESS"},
					},
					&cli.StringFlag{
						Name:     "amount",
						Usage:    "Token amount to claim (smallest unit)",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "nonce",
						Usage:    "Voucher nonce",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "signature",
						Usage:    "Voucher signature (hex)",
						Required: true,
					},
				},
				Action: claimAction,
			},
		},
		Before: validateFlags,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func validateFlags(c *cli.Context) error {
	if c.String("private-key") != "" && c.String("kms-key-id") != "" {
		return fmt.Errorf("cannot specify both --private-key and --kms-key-id")
	}
	if gasPrice := c.String("gas-price"); gasPrice != "" {
		if _, err := parseGasPrice(gasPrice); err != nil {
			return err
		}
	}
	return nil
}

func parseGasPrice(value string) (*big.Int, error) {
	price, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("invalid --gas-price %q: expected a decimal wei value", value)
	}
	return price, nil
}

func newSDK(c *cli.Context) (*sdk.SDK, *zap.Logger, error) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("debug")})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cfg := &sdk.Config{Endpoint: c.String("endpoint")}
	if gasPrice := c.String("gas-price"); gasPrice != "" {
		price, err := parseGasPrice(gasPrice)
		if err != nil {
			return nil, nil, err
		}
		cfg.GasPricer = txExecutor.FixedGasPrice(price)
	}

	s, err := sdk.New(c.Context, cfg, l)
	if err != nil {
		return nil, nil, err
	}
	return s, l, nil
}

func newSigner(c *cli.Context) (txSigner.ITransactionSigner, error) {
	if privateKey := c.String("private-key"); privateKey != "" {
		return txSigner.NewPrivateKeySigner(privateKey)
	}
	if kmsKeyID := c.String("kms-key-id"); kmsKeyID != "" {
		return txSigner.NewAWSKMSSigner(kmsKeyID, c.String("kms-region"))
	}
	return nil, fmt.Errorf("must specify either --private-key or --kms-key-id for transaction signing")
}

func parseAddress(value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid address %q", value)
	}
	return common.HexToAddress(value), nil
}

func balanceAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("balance requires at least one address argument")
	}

	s, _, err := newSDK(c)
	if err != nil {
		return err
	}
	defer s.Close()

	addresses := util.Map(c.Args().Slice(), func(arg string, _ uint64) string {
		return strings.TrimSpace(arg)
	})
	for _, arg := range addresses {
		addr, err := parseAddress(arg)
		if err != nil {
			return err
		}
		balance, err := s.BalanceOf(c.Context, addr)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s wei\t%s ETH\n", addr.Hex(), balance.String(), sdk.WeiToEther(balance).FloatString(6))
	}
	return nil
}

func transferAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("transfer requires <recipient> <amount-ether> arguments")
	}
	recipient, err := parseAddress(c.Args().Get(0))
	if err != nil {
		return err
	}
	amountEther, ok := new(big.Rat).SetString(c.Args().Get(1))
	if !ok {
		return fmt.Errorf("invalid ether amount %q", c.Args().Get(1))
	}

	signer, err := newSigner(c)
	if err != nil {
		return err
	}
	s, l, err := newSDK(c)
	if err != nil {
		return err
	}
	defer s.Close()

	receipt, err := s.Transfer(c.Context, recipient, sdk.EtherToWei(amountEther), signer).Wait(c.Context)
	if err != nil {
		return err
	}
	l.Info("transfer confirmed",
		zap.String("hash", receipt.TxHash.Hex()),
		zap.String("recipient", recipient.Hex()),
	)
	fmt.Println(receipt.TxHash.Hex())
	return nil
}

func deployManagerAction(c *cli.Context) error {
	signer, err := newSigner(c)
	if err != nil {
		return err
	}
	s, l, err := newSDK(c)
	if err != nil {
		return err
	}
	defer s.Close()

	address, receipt, err := s.DeployManager(c.Context, signer)
	if err != nil {
		return err
	}
	l.Info("manager deployed",
		zap.String("address", address.Hex()),
		zap.String("hash", receipt.TxHash.Hex()),
	)
	fmt.Println(address.Hex())
	return nil
}

func claimAction(c *cli.Context) error {
	managerAddr, err := parseAddress(c.String("manager"))
	if err != nil {
		return err
	}
	amount, ok := new(big.Int).SetString(c.String("amount"), 10)
	if !ok {
		return fmt.Errorf("invalid amount %q", c.String("amount"))
	}

	signer, err := newSigner(c)
	if err != nil {
		return err
	}
	s, l, err := newSDK(c)
	if err != nil {
		return err
	}
	defer s.Close()

	manager, err := s.Manager(managerAddr)
	if err != nil {
		return err
	}

	pending, err := manager.ClaimTFC(
		c.Context,
		amount,
		new(big.Int).SetUint64(c.Uint64("nonce")),
		c.String("signature"),
		signer,
	)
	if err != nil {
		return err
	}
	receipt, err := pending.Wait(c.Context)
	if err != nil {
		return err
	}
	l.Info("claim confirmed", zap.String("hash", receipt.TxHash.Hex()))
	fmt.Println(receipt.TxHash.Hex())
	return nil
}
