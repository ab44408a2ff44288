package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var addWebhookCmd = cli.Command{
	Name:  "addwebhook",
	Usage: "register an endpoint to be notified on a topic, use * for all topics",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "topic", Required: true},
		&cli.StringFlag{Name: "endpoint", Required: true},
		&cli.StringFlag{Name: "secret", Usage: "if set, notifications carry a signed bearer token"},
	},
	Action: addWebhookAction,
}

func addWebhookAction(ctx *cli.Context) error {
	resp, err := doRequest(ctx, http.MethodPost, "/v1/webhooks", map[string]interface{}{
		"topic":    ctx.String("topic"),
		"endpoint": ctx.String("endpoint"),
		"secret":   ctx.String("secret"),
	})
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

var removeWebhookCmd = cli.Command{
	Name:  "removewebhook",
	Usage: "deregister a webhook by id",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "id", Required: true},
	},
	Action: removeWebhookAction,
}

func removeWebhookAction(ctx *cli.Context) error {
	resp, err := doRequest(ctx, http.MethodDelete, "/v1/webhooks/"+ctx.String("id"), nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

var listWebhooksCmd = cli.Command{
	Name:  "listwebhooks",
	Usage: "show the webhooks registered for a topic",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "topic", Required: true},
	},
	Action: listWebhooksAction,
}

func listWebhooksAction(ctx *cli.Context) error {
	resp, err := doRequest(ctx, http.MethodGet, "/v1/webhooks?topic="+ctx.String("topic"), nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
