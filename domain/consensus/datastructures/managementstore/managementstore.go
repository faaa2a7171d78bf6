// Package managementstore owns the top-level bookkeeping the consensus
// factory reads before any per-instance consensus database is even open
// (§4.9): the current/staging consensus keys, the highest key ever
// handed out, and the archival-node flag. It sits directly on
// infrastructure/db/database rather than the StagingArea/DBManager
// contract every per-consensus store uses, since it has to be
// queryable before a StagingArea's owning consensus instance exists.
package managementstore

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/database"
)

var (
	metadataKey = []byte("MULTI_CONSENSUS_META")
	entryPrefix = []byte("CONSENSUS_ENTRIES")
)

// ErrStagingConsensusExists is returned by NewStagingConsensusEntry when a
// staging key is already reserved, per spec's own open-question decision:
// reject the new request rather than queue or silently replace it.
var ErrStagingConsensusExists = errors.New("a staging consensus already exists")

// ConsensusEntry names one consensus instance's on-disk directory and when
// it was created.
type ConsensusEntry struct {
	Key               uint64
	DirectoryName     string
	CreationTimestamp int64
}

type metadata struct {
	currentConsensusKey *uint64
	stagingConsensusKey *uint64
	maxKeyUsed          uint64
	isArchival          bool
}

// Store is the management database's handle.
type Store struct {
	db database.Database
}

// New opens the management store against db, initialising empty metadata
// on first run.
func New(db database.Database) (*Store, error) {
	s := &Store{db: db}

	has, err := db.Has(metadataKey)
	if err != nil {
		return nil, err
	}
	if !has {
		if err := s.writeMetadata(&metadata{}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ActiveConsensusEntry returns the current active entry, or reserves a
// fresh key and returns a new entry (isNew=true) if no active consensus
// has ever been saved -- the caller is responsible for calling
// SaveNewActiveConsensus once the new instance bootstraps successfully.
func (s *Store) ActiveConsensusEntry(now func() int64) (entry ConsensusEntry, isNew bool, err error) {
	md, err := s.readMetadata()
	if err != nil {
		return ConsensusEntry{}, false, err
	}

	if md.currentConsensusKey != nil {
		entry, err := s.readEntry(*md.currentConsensusKey)
		return entry, false, err
	}

	md.maxKeyUsed++
	key := md.maxKeyUsed
	if err := s.writeMetadata(md); err != nil {
		return ConsensusEntry{}, false, err
	}
	return entryFromKey(key, now()), true, nil
}

// SaveNewActiveConsensus persists entry as a brand-new active consensus --
// called only once its consensus instance has successfully bootstrapped,
// so a crash mid-bootstrap leaves no dangling active entry behind.
func (s *Store) SaveNewActiveConsensus(entry ConsensusEntry) error {
	has, err := s.db.Has(entryKey(entry.Key))
	if err != nil {
		return err
	}
	if has {
		return errors.Errorf("consensus entry %d already exists", entry.Key)
	}
	if err := s.writeEntry(entry); err != nil {
		return err
	}

	md, err := s.readMetadata()
	if err != nil {
		return err
	}
	key := entry.Key
	md.currentConsensusKey = &key
	return s.writeMetadata(md)
}

// NewStagingConsensusEntry reserves and persists a fresh key for a staging
// consensus (IBD-via-pruning-proof bootstrap, §4.9), failing with
// ErrStagingConsensusExists if one is already pending.
func (s *Store) NewStagingConsensusEntry(now func() int64) (ConsensusEntry, error) {
	md, err := s.readMetadata()
	if err != nil {
		return ConsensusEntry{}, err
	}
	if md.stagingConsensusKey != nil {
		return ConsensusEntry{}, ErrStagingConsensusExists
	}

	md.maxKeyUsed++
	key := md.maxKeyUsed
	md.stagingConsensusKey = &key
	entry := entryFromKey(key, now())

	if err := s.writeEntry(entry); err != nil {
		return ConsensusEntry{}, err
	}
	if err := s.writeMetadata(md); err != nil {
		return ConsensusEntry{}, err
	}
	return entry, nil
}

// CommitStagingConsensus atomically promotes the staging key to active.
func (s *Store) CommitStagingConsensus() error {
	md, err := s.readMetadata()
	if err != nil {
		return err
	}
	if md.stagingConsensusKey == nil {
		return errors.New("no staging consensus to commit")
	}
	md.currentConsensusKey = md.stagingConsensusKey
	md.stagingConsensusKey = nil
	return s.writeMetadata(md)
}

// CancelStagingConsensus clears the staging key without promoting it.
func (s *Store) CancelStagingConsensus() error {
	md, err := s.readMetadata()
	if err != nil {
		return err
	}
	md.stagingConsensusKey = nil
	return s.writeMetadata(md)
}

// IsArchival reports the archival-node flag.
func (s *Store) IsArchival() (bool, error) {
	md, err := s.readMetadata()
	if err != nil {
		return false, err
	}
	return md.isArchival, nil
}

// SetArchival persists the archival-node flag.
func (s *Store) SetArchival(isArchival bool) error {
	md, err := s.readMetadata()
	if err != nil {
		return err
	}
	md.isArchival = isArchival
	return s.writeMetadata(md)
}

func entryFromKey(key uint64, creationTimestamp int64) ConsensusEntry {
	return ConsensusEntry{
		Key:               key,
		DirectoryName:     consensusDirName(key),
		CreationTimestamp: creationTimestamp,
	}
}

func consensusDirName(key uint64) string {
	digits := [3]byte{'0', '0', '0'}
	s := uintToString(key)
	if len(s) >= len(digits) {
		return "consensus-" + s
	}
	copy(digits[len(digits)-len(s):], s)
	return "consensus-" + string(digits[:])
}

func uintToString(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

func entryKey(key uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], key)
	return append(append([]byte{}, entryPrefix...), b[:]...)
}

func (s *Store) readEntry(key uint64) (ConsensusEntry, error) {
	raw, err := s.db.Get(entryKey(key))
	if err != nil {
		return ConsensusEntry{}, err
	}
	return deserializeEntry(raw)
}

func (s *Store) writeEntry(entry ConsensusEntry) error {
	return s.db.Put(entryKey(entry.Key), serializeEntry(entry))
}

func (s *Store) readMetadata() (*metadata, error) {
	raw, err := s.db.Get(metadataKey)
	if err != nil {
		return nil, err
	}
	return deserializeMetadata(raw)
}

func (s *Store) writeMetadata(md *metadata) error {
	return s.db.Put(metadataKey, serializeMetadata(md))
}

func serializeEntry(entry ConsensusEntry) []byte {
	buf := &bytes.Buffer{}
	var keyBytes, tsBytes [8]byte
	binary.LittleEndian.PutUint64(keyBytes[:], entry.Key)
	binary.LittleEndian.PutUint64(tsBytes[:], uint64(entry.CreationTimestamp))
	buf.Write(keyBytes[:])
	buf.Write(tsBytes[:])
	nameBytes := []byte(entry.DirectoryName)
	var lenBytes [4]byte
	binary.LittleEndian.PutUint32(lenBytes[:], uint32(len(nameBytes)))
	buf.Write(lenBytes[:])
	buf.Write(nameBytes)
	return buf.Bytes()
}

func deserializeEntry(raw []byte) (ConsensusEntry, error) {
	r := bytes.NewReader(raw)
	var lenBytes [4]byte
	var key, ts uint64
	if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
		return ConsensusEntry{}, errors.Wrap(err, "short read decoding consensus entry key")
	}
	if err := binary.Read(r, binary.LittleEndian, &ts); err != nil {
		return ConsensusEntry{}, errors.Wrap(err, "short read decoding consensus entry timestamp")
	}
	if _, err := io.ReadFull(r, lenBytes[:]); err != nil {
		return ConsensusEntry{}, errors.Wrap(err, "short read decoding consensus entry name length")
	}
	nameLen := binary.LittleEndian.Uint32(lenBytes[:])
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return ConsensusEntry{}, errors.Wrap(err, "short read decoding consensus entry name")
	}
	return ConsensusEntry{Key: key, DirectoryName: string(name), CreationTimestamp: int64(ts)}, nil
}

func serializeMetadata(md *metadata) []byte {
	buf := &bytes.Buffer{}
	writeOptionalUint64(buf, md.currentConsensusKey)
	writeOptionalUint64(buf, md.stagingConsensusKey)
	var maxKeyBytes [8]byte
	binary.LittleEndian.PutUint64(maxKeyBytes[:], md.maxKeyUsed)
	buf.Write(maxKeyBytes[:])
	if md.isArchival {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func deserializeMetadata(raw []byte) (*metadata, error) {
	r := bytes.NewReader(raw)
	current, err := readOptionalUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "short read decoding current consensus key")
	}
	staging, err := readOptionalUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "short read decoding staging consensus key")
	}
	var maxKeyUsed uint64
	if err := binary.Read(r, binary.LittleEndian, &maxKeyUsed); err != nil {
		return nil, errors.Wrap(err, "short read decoding max key used")
	}
	isArchivalByte, err := r.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "short read decoding archival flag")
	}
	return &metadata{
		currentConsensusKey: current,
		stagingConsensusKey: staging,
		maxKeyUsed:          maxKeyUsed,
		isArchival:          isArchivalByte != 0,
	}, nil
}

func writeOptionalUint64(buf *bytes.Buffer, v *uint64) {
	if v == nil {
		buf.WriteByte(0)
		var zero [8]byte
		buf.Write(zero[:])
		return
	}
	buf.WriteByte(1)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], *v)
	buf.Write(b[:])
}

func readOptionalUint64(r *bytes.Reader) (*uint64, error) {
	present, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	var v uint64
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}
	return &v, nil
}
