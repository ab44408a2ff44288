package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var initSwapCmd = cli.Command{
	Name:  "initswap",
	Usage: "propose a two-party token swap",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "caller", Usage: "the initiator identity", Required: true},
		&cli.StringFlag{Name: "counterparty", Required: true},
		&cli.StringFlag{Name: "asset_a", Usage: "token given by the initiator", Required: true},
		&cli.StringFlag{Name: "asset_b", Usage: "token given by the counterparty", Required: true},
		&cli.Uint64Flag{Name: "amount_a", Required: true},
		&cli.Uint64Flag{Name: "amount_b", Required: true},
		&cli.Uint64Flag{Name: "salt", Required: true},
	},
	Action: initSwapAction,
}

func initSwapAction(ctx *cli.Context) error {
	resp, err := doRequest(ctx, http.MethodPost, "/v1/swaps", map[string]interface{}{
		"caller":       ctx.String("caller"),
		"counterparty": ctx.String("counterparty"),
		"asset_a":      ctx.String("asset_a"),
		"asset_b":      ctx.String("asset_b"),
		"amount_a":     ctx.Uint64("amount_a"),
		"amount_b":     ctx.Uint64("amount_b"),
		"salt":         ctx.Uint64("salt"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

var getSwapCmd = cli.Command{
	Name:  "getswap",
	Usage: "show a pending or accepted swap by id",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "id", Required: true},
	},
	Action: getSwapAction,
}

func getSwapAction(ctx *cli.Context) error {
	resp, err := doRequest(ctx, http.MethodGet, "/v1/swaps/"+ctx.String("id"), nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

var acceptSwapCmd = cli.Command{
	Name:  "acceptswap",
	Usage: "settle a pending swap as its counterparty",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "id", Required: true},
		&cli.StringFlag{Name: "caller", Usage: "the counterparty identity", Required: true},
	},
	Action: acceptSwapAction,
}

func acceptSwapAction(ctx *cli.Context) error {
	resp, err := doRequest(
		ctx, http.MethodPost, "/v1/swaps/"+ctx.String("id")+"/accept",
		map[string]interface{}{"caller": ctx.String("caller")},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

var cancelSwapCmd = cli.Command{
	Name:  "cancelswap",
	Usage: "withdraw a pending swap as its initiator",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "id", Required: true},
		&cli.StringFlag{Name: "caller", Usage: "the initiator identity", Required: true},
	},
	Action: cancelSwapAction,
}

func cancelSwapAction(ctx *cli.Context) error {
	resp, err := doRequest(
		ctx, http.MethodDelete, "/v1/swaps/"+ctx.String("id"),
		map[string]interface{}{"caller": ctx.String("caller")},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
