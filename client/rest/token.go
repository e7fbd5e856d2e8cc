// Copyright (C) 2025 ConsentHound Contributors
//
// This file is part of ConsentHound.
//
// ConsentHound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ConsentHound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package rest

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/youmark/pkcs8"
)

// newCredential picks the credential flow from the supplied config:
// certificate, then client secret, then resource owner password, then the
// azidentity default chain (environment, managed identity, CLI).
func newCredential(config Config) (azcore.TokenCredential, error) {
	switch {
	case config.CertPath != "":
		certs, key, err := loadCertificate(config.CertPath, config.KeyPath, config.KeyPassphrase)
		if err != nil {
			return nil, err
		}
		return azidentity.NewClientCertificateCredential(config.TenantId, config.ClientId, certs, key, nil)
	case config.ClientSecret != "":
		return azidentity.NewClientSecretCredential(config.TenantId, config.ClientId, config.ClientSecret, nil)
	case config.Username != "":
		return azidentity.NewUsernamePasswordCredential(config.TenantId, config.ClientId, config.Username, config.Password, nil)
	default:
		return azidentity.NewDefaultAzureCredential(nil)
	}
}

// loadCertificate reads PEM data from certPath (and keyPath when the key is
// kept separately). Encrypted PKCS#8 keys are handled here because
// azidentity.ParseCertificates does not decrypt them.
func loadCertificate(certPath, keyPath, passphrase string) ([]*x509.Certificate, crypto.PrivateKey, error) {
	data, err := os.ReadFile(certPath)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read certificate %s: %w", certPath, err)
	}
	if keyPath != "" && keyPath != certPath {
		keyData, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to read private key %s: %w", keyPath, err)
		}
		data = append(data, '\n')
		data = append(data, keyData...)
	}

	if certs, key, err := azidentity.ParseCertificates(data, nil); err == nil {
		return certs, key, nil
	}

	var (
		certs []*x509.Certificate
		key   crypto.PrivateKey
	)
	for block, remaining := pem.Decode(data); block != nil; block, remaining = pem.Decode(remaining) {
		switch block.Type {
		case "CERTIFICATE":
			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, nil, fmt.Errorf("unable to parse certificate in %s: %w", certPath, err)
			}
			certs = append(certs, cert)
		case "ENCRYPTED PRIVATE KEY", "PRIVATE KEY":
			parsed, err := parsePrivateKey(block.Bytes, passphrase)
			if err != nil {
				return nil, nil, fmt.Errorf("unable to parse private key: %w", err)
			}
			key = parsed
		}
	}

	if len(certs) == 0 {
		return nil, nil, fmt.Errorf("no certificate found in %s", certPath)
	}
	if key == nil {
		return nil, nil, fmt.Errorf("no usable private key found for %s", certPath)
	}
	return certs, key, nil
}

func parsePrivateKey(der []byte, passphrase string) (crypto.PrivateKey, error) {
	if passphrase != "" {
		return pkcs8.ParsePKCS8PrivateKey(der, []byte(passphrase))
	}
	return pkcs8.ParsePKCS8PrivateKey(der)
}

type tokenClaims struct {
	TenantId string
	Roles    []string
}

// decodeTokenClaims extracts the tid and roles claims without verifying the
// signature; the values are informational only.
func decodeTokenClaims(raw string) tokenClaims {
	var decoded tokenClaims

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return decoded
	}

	if tid, ok := claims["tid"].(string); ok {
		decoded.TenantId = tid
	}
	if roles, ok := claims["roles"].([]interface{}); ok {
		for _, role := range roles {
			if value, ok := role.(string); ok {
				decoded.Roles = append(decoded.Roles, value)
			}
		}
	}
	return decoded
}
