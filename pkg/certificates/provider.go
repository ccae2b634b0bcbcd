package certificates

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"time"
)

func GenerateSelfSignedCertificate(expire time.Time) (*x509.Certificate, *rsa.PrivateKey, error) {
	csr := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().Unix()),
		Issuer: pkix.Name{
			Organization: []string{"Red Hat"},
		},
		Subject: pkix.Name{
			Country:            []string{"US"},
			Organization:       []string{"Red Hat"},
			OrganizationalUnit: []string{"Migration Sizer"},
		},
		NotBefore:             time.Now(),
		NotAfter:              expire,
		IsCA:                  true,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, 4096)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate rsa private key: %w", err)
	}

	certData, err := x509.CreateCertificate(rand.Reader, csr, csr, privateKey.Public(), privateKey)
	if err != nil {
		return nil, nil, err
	}

	cert, err := x509.ParseCertificate(certData)
	if err != nil {
		return nil, nil, err
	}

	return cert, privateKey, nil
}

// NewTLSConfig builds a server TLS config. The certificate and key are read
// from certFile and keyFile; a self-signed pair valid for one year is
// generated when both are empty.
func NewTLSConfig(certFile, keyFile string) (*tls.Config, error) {
	var (
		serverCert tls.Certificate
		err        error
	)

	if certFile != "" || keyFile != "" {
		serverCert, err = tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load server certificate: %w", err)
		}
	} else {
		serverCert, err = selfSigned(time.Now().AddDate(1, 0, 0))
		if err != nil {
			return nil, fmt.Errorf("failed to generate server's certificates: %w", err)
		}
	}

	return &tls.Config{
		Certificates: []tls.Certificate{serverCert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func selfSigned(expire time.Time) (tls.Certificate, error) {
	cert, privateKey, err := GenerateSelfSignedCertificate(expire)
	if err != nil {
		return tls.Certificate{}, err
	}

	certPEM := new(bytes.Buffer)
	if err := pem.Encode(certPEM, &pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw}); err != nil {
		return tls.Certificate{}, err
	}

	privKeyPEM := new(bytes.Buffer)
	if err := pem.Encode(privKeyPEM, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privateKey)}); err != nil {
		return tls.Certificate{}, err
	}

	return tls.X509KeyPair(certPEM.Bytes(), privKeyPEM.Bytes())
}
