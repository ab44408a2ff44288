package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"
)

var daemonURLFlag = &cli.StringFlag{
	Name:  "daemon_url",
	Usage: "the address of the bazaar daemon to connect to",
	Value: "http://localhost:9945",
}

func main() {
	app := &cli.App{
		Name:    "bazaar",
		Usage:   "operator CLI for the bazaar daemon",
		Version: version,
		Flags:   []cli.Flag{daemonURLFlag},
		Commands: []*cli.Command{
			&listAssetCmd, &getListingCmd, &delistCmd, &fulfillCmd,
			&historyCmd, &setFeeCmd, &withdrawFeesCmd,
			&initSwapCmd, &getSwapCmd, &acceptSwapCmd, &cancelSwapCmd,
			&addWebhookCmd, &removeWebhookCmd, &listWebhooksCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const version = "0.1.0"

func doRequest(ctx *cli.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(buf)
	}

	url := ctx.String(daemonURLFlag.Name) + path
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("daemon replied with status %d: %s", resp.StatusCode, respBody)
	}
	return respBody, nil
}

func printRespJSON(resp []byte) {
	if len(resp) == 0 {
		fmt.Println("ok")
		return
	}
	var out bytes.Buffer
	if err := json.Indent(&out, resp, "", "  "); err != nil {
		fmt.Println(string(resp))
		return
	}
	fmt.Println(out.String())
}
