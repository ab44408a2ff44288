package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var listAssetCmd = cli.Command{
	Name:  "listasset",
	Usage: "list a non-fungible asset for sale at a fixed price",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "caller", Usage: "the seller identity", Required: true},
		&cli.StringFlag{Name: "asset_contract", Required: true},
		&cli.Uint64Flag{Name: "asset_id", Required: true},
		&cli.Uint64Flag{Name: "price", Required: true},
	},
	Action: listAssetAction,
}

func listAssetAction(ctx *cli.Context) error {
	resp, err := doRequest(ctx, http.MethodPost, "/v1/listings", map[string]interface{}{
		"caller":         ctx.String("caller"),
		"asset_contract": ctx.String("asset_contract"),
		"asset_id":       ctx.Uint64("asset_id"),
		"price":          ctx.Uint64("price"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

var getListingCmd = cli.Command{
	Name:  "getlisting",
	Usage: "show a listing by id",
	Flags: []cli.Flag{
		&cli.Uint64Flag{Name: "id", Required: true},
	},
	Action: getListingAction,
}

func getListingAction(ctx *cli.Context) error {
	resp, err := doRequest(
		ctx, http.MethodGet, fmt.Sprintf("/v1/listings/%d", ctx.Uint64("id")), nil,
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

var delistCmd = cli.Command{
	Name:  "delist",
	Usage: "remove an active listing and return custody to the seller",
	Flags: []cli.Flag{
		&cli.Uint64Flag{Name: "id", Required: true},
		&cli.StringFlag{Name: "caller", Usage: "the seller identity", Required: true},
	},
	Action: delistAction,
}

func delistAction(ctx *cli.Context) error {
	resp, err := doRequest(
		ctx, http.MethodDelete, fmt.Sprintf("/v1/listings/%d", ctx.Uint64("id")),
		map[string]interface{}{"caller": ctx.String("caller")},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

var fulfillCmd = cli.Command{
	Name:  "fulfill",
	Usage: "buy a listed asset by attaching the exact listing price",
	Flags: []cli.Flag{
		&cli.Uint64Flag{Name: "id", Required: true},
		&cli.StringFlag{Name: "caller", Usage: "the buyer identity", Required: true},
		&cli.Uint64Flag{Name: "attached_value", Required: true},
	},
	Action: fulfillAction,
}

func fulfillAction(ctx *cli.Context) error {
	resp, err := doRequest(
		ctx, http.MethodPost, fmt.Sprintf("/v1/listings/%d/fulfill", ctx.Uint64("id")),
		map[string]interface{}{
			"caller":         ctx.String("caller"),
			"attached_value": ctx.Uint64("attached_value"),
		},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

var historyCmd = cli.Command{
	Name:  "history",
	Usage: "show the listing ids an identity participated in",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "account", Required: true},
	},
	Action: historyAction,
}

func historyAction(ctx *cli.Context) error {
	resp, err := doRequest(
		ctx, http.MethodGet, "/v1/history/"+ctx.String("account"), nil,
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

var setFeeCmd = cli.Command{
	Name:  "setfee",
	Usage: "update the percentage fee applied to future sales",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "caller", Usage: "the fee owner identity", Required: true},
		&cli.UintFlag{Name: "percentage_fee", Required: true},
	},
	Action: setFeeAction,
}

func setFeeAction(ctx *cli.Context) error {
	resp, err := doRequest(ctx, http.MethodPut, "/v1/fees", map[string]interface{}{
		"caller":         ctx.String("caller"),
		"percentage_fee": ctx.Uint("percentage_fee"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

var withdrawFeesCmd = cli.Command{
	Name:  "withdrawfees",
	Usage: "push the whole accumulated-fees balance to the fee owner",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "caller", Usage: "the fee owner identity", Required: true},
	},
	Action: withdrawFeesAction,
}

func withdrawFeesAction(ctx *cli.Context) error {
	resp, err := doRequest(ctx, http.MethodPost, "/v1/fees/withdraw", map[string]interface{}{
		"caller": ctx.String("caller"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
