package txSigner

import (
	"context"
	"fmt"
	"math/big"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/kms"
	"github.com/aws/aws-sdk-go/service/kms/kmsiface"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// AWSKMSSigner implements ITransactionSigner using AWS KMS.
// The private key never leaves KMS; only hashes are sent for signing.
type AWSKMSSigner struct {
	kmsClient kmsiface.KMSAPI
	keyID     string
	address   common.Address
}

// NewAWSKMSSigner creates a new AWSKMSSigner with the specified KMS key ID and AWS region.
// This constructor establishes a connection to AWS KMS and derives the Ethereum address
// from the public key associated with the specified KMS key.
//
// Parameters:
//   - keyID: The AWS KMS key ID or ARN for signing operations
//   - region: The AWS region where the KMS key is located
//
// Returns:
//   - *AWSKMSSigner: A new AWS KMS signer instance
//   - error: An error if the AWS session cannot be created or the key is invalid
func NewAWSKMSSigner(keyID, region string) (*AWSKMSSigner, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	kmsClient := kms.New(sess)

	// Get the public key to derive the Ethereum address
	address, err := getAddressFromKMSKey(kmsClient, keyID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive address from KMS key: %w", err)
	}

	return &AWSKMSSigner{
		kmsClient: kmsClient,
		keyID:     keyID,
		address:   address,
	}, nil
}

// SignTx signs the transaction by sending its signing hash to AWS KMS and
// reassembling the returned ECDSA signature into Ethereum's r||s||v format.
func (a *AWSKMSSigner) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signer := types.LatestSignerForChainID(chainID)
	hash := signer.Hash(tx)

	signature, err := a.signHashWithKMS(ctx, hash.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction with KMS: %w", err)
	}

	signedTx, err := tx.WithSignature(signer, signature)
	if err != nil {
		return nil, fmt.Errorf("failed to apply signature to transaction: %w", err)
	}

	return signedTx, nil
}

// Address returns the Ethereum address derived from the KMS public key
func (a *AWSKMSSigner) Address() common.Address {
	return a.address
}

// signHashWithKMS signs a 32-byte hash using AWS KMS
func (a *AWSKMSSigner) signHashWithKMS(ctx context.Context, hash []byte) ([]byte, error) {
	input := &kms.SignInput{
		KeyId:            aws.String(a.keyID),
		Message:          hash,
		MessageType:      aws.String("DIGEST"),
		SigningAlgorithm: aws.String("ECDSA_SHA_256"),
	}

	result, err := a.kmsClient.SignWithContext(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("KMS signing failed: %w", err)
	}

	// Parse the ASN.1 DER signature into r, s values
	r, s, err := parseASN1Signature(result.Signature)
	if err != nil {
		return nil, fmt.Errorf("failed to parse KMS signature: %w", err)
	}

	// KMS may return s in the upper half of the curve order; Ethereum
	// requires the canonical lower-s form.
	s = canonicalizeS(s)

	// Convert to Ethereum signature format (r || s || v)
	signature := make([]byte, 65)
	r.FillBytes(signature[0:32])
	s.FillBytes(signature[32:64])

	// Determine the recovery id by trial recovery against the known address
	for v := byte(0); v < 2; v++ {
		signature[64] = v
		recovered, err := crypto.SigToPub(hash, signature)
		if err != nil {
			continue
		}
		if crypto.PubkeyToAddress(*recovered) == a.address {
			return signature, nil
		}
	}

	return nil, fmt.Errorf("failed to determine recovery ID")
}

// getAddressFromKMSKey derives the Ethereum address from a KMS public key
func getAddressFromKMSKey(kmsClient kmsiface.KMSAPI, keyID string) (common.Address, error) {
	input := &kms.GetPublicKeyInput{
		KeyId: aws.String(keyID),
	}

	result, err := kmsClient.GetPublicKey(input)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to get public key from KMS: %w", err)
	}

	// KMS returns a DER-encoded SubjectPublicKeyInfo; the uncompressed
	// secp256k1 point is its trailing 65 bytes.
	der := result.PublicKey
	if len(der) < 65 {
		return common.Address{}, fmt.Errorf("KMS public key too short: %d bytes", len(der))
	}
	pubKey, err := crypto.UnmarshalPubkey(der[len(der)-65:])
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to parse public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}

// canonicalizeS maps s into the lower half of the secp256k1 curve order
func canonicalizeS(s *big.Int) *big.Int {
	n := crypto.S256().Params().N
	halfN := new(big.Int).Rsh(n, 1)
	if s.Cmp(halfN) > 0 {
		return new(big.Int).Sub(n, s)
	}
	return s
}

// parseASN1Signature parses an ASN.1 DER encoded ECDSA signature into r and s values
func parseASN1Signature(signature []byte) (*big.Int, *big.Int, error) {
	if len(signature) < 6 {
		return nil, nil, fmt.Errorf("signature too short")
	}

	// Skip SEQUENCE tag and length
	offset := 2
	if signature[1] > 0x80 {
		offset += int(signature[1] - 0x80)
	}
	if offset+2 > len(signature) {
		return nil, nil, fmt.Errorf("signature length header out of bounds")
	}

	// Parse r value
	if signature[offset] != 0x02 {
		return nil, nil, fmt.Errorf("expected INTEGER tag for r")
	}
	offset++
	rLen := int(signature[offset])
	offset++
	if offset+rLen > len(signature) {
		return nil, nil, fmt.Errorf("r length out of bounds")
	}
	r := new(big.Int).SetBytes(signature[offset : offset+rLen])
	offset += rLen

	// Parse s value
	if offset+2 > len(signature) || signature[offset] != 0x02 {
		return nil, nil, fmt.Errorf("expected INTEGER tag for s")
	}
	offset++
	sLen := int(signature[offset])
	offset++
	if offset+sLen > len(signature) {
		return nil, nil, fmt.Errorf("s length out of bounds")
	}
	s := new(big.Int).SetBytes(signature[offset : offset+sLen])

	return r, s, nil
}
