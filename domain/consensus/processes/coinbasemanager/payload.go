package coinbasemanager

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// serializeCoinbasePayload and deserializeCoinbasePayload codec a
// coinbase's payload as blueScore || subsidy || scriptPubKey.Version ||
// len(scriptPubKey.Script) || scriptPubKey.Script || extraData,
// little-endian throughout (§4.3's payload shape), the same manual-codec
// idiom this repo's database/binaryserialization package uses in place of
// the teacher's protobuf-generated store layer (see DESIGN.md).
func serializeCoinbasePayload(blueScore, subsidy uint64, coinbaseData *externalapi.DomainCoinbaseData) ([]byte, error) {
	if len(coinbaseData.ScriptPublicKey.Script) > 255 {
		return nil, errors.New("coinbasemanager: script public key longer than 255 bytes")
	}

	buf := &bytes.Buffer{}

	if err := binary.Write(buf, binary.LittleEndian, blueScore); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, subsidy); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, coinbaseData.ScriptPublicKey.Version); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint8(len(coinbaseData.ScriptPublicKey.Script))); err != nil {
		return nil, err
	}
	if _, err := buf.Write(coinbaseData.ScriptPublicKey.Script); err != nil {
		return nil, err
	}
	if _, err := buf.Write(coinbaseData.ExtraData); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// coinbasePayload is the deserialized form of a coinbase transaction's
// payload, matching §4.3's wire shape.
type coinbasePayload struct {
	blueScore    uint64
	subsidy      uint64
	coinbaseData *externalapi.DomainCoinbaseData
}

func deserializeCoinbasePayload(coinbaseTransaction *externalapi.DomainTransaction) (*coinbasePayload, error) {
	payload := coinbaseTransaction.Payload
	r := bytes.NewReader(payload)

	var blueScore uint64
	if err := binary.Read(r, binary.LittleEndian, &blueScore); err != nil {
		return nil, errors.Wrap(err, "coinbasemanager: malformed coinbase payload (blueScore)")
	}

	var subsidy uint64
	if err := binary.Read(r, binary.LittleEndian, &subsidy); err != nil {
		return nil, errors.Wrap(err, "coinbasemanager: malformed coinbase payload (subsidy)")
	}

	var scriptVersion uint16
	if err := binary.Read(r, binary.LittleEndian, &scriptVersion); err != nil {
		return nil, errors.Wrap(err, "coinbasemanager: malformed coinbase payload (scriptVersion)")
	}

	var scriptLen uint8
	if err := binary.Read(r, binary.LittleEndian, &scriptLen); err != nil {
		return nil, errors.Wrap(err, "coinbasemanager: malformed coinbase payload (scriptLen)")
	}

	script := make([]byte, scriptLen)
	if _, err := io.ReadFull(r, script); err != nil {
		return nil, errors.Wrap(err, "coinbasemanager: malformed coinbase payload (script)")
	}

	extraData, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "coinbasemanager: malformed coinbase payload (extraData)")
	}

	return &coinbasePayload{
		blueScore: blueScore,
		subsidy:   subsidy,
		coinbaseData: &externalapi.DomainCoinbaseData{
			ScriptPublicKey: &externalapi.ScriptPublicKey{
				Version: scriptVersion,
				Script:  script,
			},
			ExtraData: extraData,
		},
	}, nil
}
