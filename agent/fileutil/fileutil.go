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

// Package fileutil contains utilities for working with the file system.
package fileutil

import (
	"bytes"
	"io"
	"os"
)

// ReadAllText reads all content from the specified file.
func ReadAllText(filePath string) (text string, err error) {
	var exists bool
	if exists, err = LocalFileExist(filePath); err != nil || !exists {
		return
	}

	f, err := fs.Open(filePath)
	if err != nil {
		return
	}
	defer f.Close()

	buf := bytes.NewBuffer(nil)
	if _, err = io.Copy(buf, f); err != nil {
		return
	}
	text = buf.String()
	return
}

// Exists returns true if the given file exists, false otherwise, ignoring any underlying error.
func Exists(filePath string) bool {
	exist, _ := LocalFileExist(filePath)
	return exist
}

// LocalFileExist returns true if the given file exists, false otherwise.
func LocalFileExist(path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if fs.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// UserHomeDir resolves the calling user's home directory the same way across platforms,
// falling back to USERPROFILE when HOME is unset (Windows).
func UserHomeDir() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	if home := os.Getenv("USERPROFILE"); home != "" {
		return home, nil
	}
	return os.UserHomeDir()
}
