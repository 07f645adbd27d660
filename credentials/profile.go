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

package credentials

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/aws/log-forwarder-agent/agent/fileutil"
)

const (
	envSharedCredentialsFile = "AWS_SHARED_CREDENTIALS_FILE"
	envProfile               = "AWS_PROFILE"
	defaultProfileName       = "default"

	iniAccessKeyID     = "aws_access_key_id"
	iniSecretAccessKey = "aws_secret_access_key"
	iniSessionToken    = "aws_session_token"
)

// ProfileProvider resolves credentials from an INI-style shared credentials
// file (§4.3).
type ProfileProvider struct {
	path    string
	profile string
	getenv  getenvFunc
}

// NewProfileProvider builds a provider for the given file path and profile
// name. An empty path falls back to $AWS_SHARED_CREDENTIALS_FILE, then
// $HOME/.aws/credentials; an empty profile falls back to $AWS_PROFILE, then
// "default".
func NewProfileProvider(path, profile string) *ProfileProvider {
	return &ProfileProvider{path: path, profile: profile, getenv: os.Getenv}
}

// Name implements Provider.
func (p *ProfileProvider) Name() string { return "profile" }

func (p *ProfileProvider) resolvePath() (string, error) {
	if p.path != "" {
		return p.path, nil
	}
	if path := p.getenv(envSharedCredentialsFile); path != "" {
		return path, nil
	}
	home, err := fileutil.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".aws", "credentials"), nil
}

func (p *ProfileProvider) resolveProfile() string {
	if p.profile != "" {
		return p.profile
	}
	if name := p.getenv(envProfile); name != "" {
		return name
	}
	return defaultProfileName
}

// Retrieve implements Provider. An absent file or absent profile section is
// NotApplicable; a present file that fails to parse, or a profile missing
// required keys, is Configuration.
func (p *ProfileProvider) Retrieve(ctx context.Context) (Credential, error) {
	path, err := p.resolvePath()
	if err != nil || !fileutil.Exists(path) {
		return Credential{}, &Error{Kind: KindNotApplicable, Source: p.Name()}
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return Credential{}, &Error{Kind: KindConfiguration, Source: p.Name(), Err: err}
	}

	section, err := cfg.GetSection(p.resolveProfile())
	if err != nil {
		return Credential{}, &Error{Kind: KindNotApplicable, Source: p.Name()}
	}

	accessKeyID := section.Key(iniAccessKeyID).String()
	secretAccessKey := section.Key(iniSecretAccessKey).String()
	if accessKeyID == "" || secretAccessKey == "" {
		return Credential{}, &Error{Kind: KindConfiguration, Source: p.Name(), Err: errMissingField(iniAccessKeyID + "/" + iniSecretAccessKey)}
	}

	return Credential{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		SessionToken:    section.Key(iniSessionToken).String(),
		Expiration:      neverExpires,
	}, nil
}

// Refresh implements Provider by re-reading the file; there is no cache to
// invalidate.
func (p *ProfileProvider) Refresh(ctx context.Context) error {
	_, err := p.Retrieve(ctx)
	return err
}
