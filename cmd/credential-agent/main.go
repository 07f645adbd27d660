// Copyright 2016 Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may not
// use this file except in compliance with the License. A copy of the
// License is located at
//
// http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package main represents the entry point of the credential resolution agent.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aws/log-forwarder-agent/agent/appconfig"
	agentcontext "github.com/aws/log-forwarder-agent/agent/context"
	"github.com/aws/log-forwarder-agent/agent/jsonutil"
	logger "github.com/aws/log-forwarder-agent/agent/log"
	"github.com/aws/log-forwarder-agent/agent/tlsconfig"
	"github.com/aws/log-forwarder-agent/credentials"
)

func main() {
	os.Exit(Start())
}

// Start resolves a credential through the default chain once, printing its
// source and expiration, and optionally keeps it warm with a background
// refresher until interrupted. It returns the process exit code.
func Start() int {
	watchPtr := flag.Bool("watch", false, "keep resolved credentials warm with a background refresher")
	dumpConfigPtr := flag.Bool("dump-config", false, "print the resolved appconfig.Config as indented JSON and exit")
	flag.Parse()

	config := appconfig.DefaultLoader.GetConfig(false)
	log := logger.GetLogger()
	defer log.Flush()

	ctx := agentcontext.Default(log, config, "credential-agent")

	tlsCfg, err := tlsconfig.GetDefaultTLSConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to build TLS config: %v\n", err)
		return 1
	}
	client := &http.Client{
		Timeout:   config.Credentials.ImdsTimeout + config.Credentials.StsTimeout,
		Transport: &http.Transport{TLSClientConfig: tlsCfg},
	}

	return run(ctx, runOptions{dumpConfig: *dumpConfigPtr, watch: *watchPtr}, client)
}

type runOptions struct {
	dumpConfig bool
	watch      bool
}

// run carries out Start's logic against an injected context.T and HTTP
// client, so tests can exercise it with agentcontext.Mock and
// credentials.MockHTTPClient instead of talking to the environment, IMDS,
// or STS.
func run(ctx agentcontext.T, opts runOptions, client credentials.HTTPClient) int {
	if opts.dumpConfig {
		out, err := jsonutil.MarshalIndent(ctx.AppConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "unable to marshal config: %v\n", err)
			return 1
		}
		fmt.Println(out)
		return 0
	}

	ctx.Log().Infof("Starting %s", ctx.AppConfig().Agent.Name)

	cfg := ctx.AppConfig().Credentials
	chain := credentials.NewDefaultChain(cfg, client, ctx.Log())

	reqCtx, cancel := context.WithTimeout(context.Background(), cfg.ImdsTimeout+cfg.StsTimeout)
	defer cancel()

	cred, err := chain.Retrieve(reqCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to resolve credentials: %v\n", err)
		return 1
	}

	fmt.Printf("resolved credentials for access key %s, expiring %s\n", cred.AccessKeyID, cred.Expiration.Format(time.RFC3339))

	if opts.watch {
		refresher := credentials.NewRefresher(ctx.Log(), chain, cfg.ImdsTimeout+cfg.StsTimeout)
		if err := refresher.Start(1); err != nil {
			fmt.Fprintf(os.Stderr, "unable to start refresher: %v\n", err)
			return 1
		}
		defer refresher.Stop()
		select {}
	}
	return 0
}
