package taskdependencymanager

import (
	"testing"
	"time"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

func testHash(b byte) *externalapi.DomainHash {
	var h externalapi.DomainHash
	h[0] = b
	return &h
}

func TestRegisterBlockRejectsDuplicate(t *testing.T) {
	tdm := New()
	hash := testHash(1)

	if !tdm.RegisterBlock(hash) {
		t.Fatalf("expected the first registration to succeed")
	}
	if tdm.RegisterBlock(hash) {
		t.Fatalf("expected a duplicate concurrent registration to be rejected")
	}
}

func TestWaitForBlockUnblocksOnEndProcessing(t *testing.T) {
	tdm := New()
	hash := testHash(1)
	tdm.RegisterBlock(hash)

	waitDone := make(chan struct{})
	go func() {
		tdm.WaitForBlock(hash)
		close(waitDone)
	}()

	select {
	case <-waitDone:
		t.Fatalf("WaitForBlock returned before EndProcessing was called")
	case <-time.After(20 * time.Millisecond):
	}

	tdm.EndProcessing(hash)

	select {
	case <-waitDone:
	case <-time.After(time.Second):
		t.Fatalf("WaitForBlock did not unblock after EndProcessing")
	}
}

func TestWaitForBlockReturnsImmediatelyForUnknownHash(t *testing.T) {
	tdm := New()
	done := make(chan struct{})
	go func() {
		tdm.WaitForBlock(testHash(1))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("WaitForBlock should return immediately for a hash that was never registered")
	}
}

func TestTryBeginProcessingExclusivity(t *testing.T) {
	tdm := New()
	hash := testHash(1)

	if !tdm.TryBeginProcessing(hash) {
		t.Fatalf("expected the first claim to succeed")
	}
	if tdm.TryBeginProcessing(hash) {
		t.Fatalf("expected a second concurrent claim on the same hash to fail")
	}
}

func TestWaitForIdle(t *testing.T) {
	tdm := New()
	hash := testHash(1)
	tdm.RegisterBlock(hash)

	idleDone := make(chan struct{})
	go func() {
		tdm.WaitForIdle()
		close(idleDone)
	}()

	select {
	case <-idleDone:
		t.Fatalf("WaitForIdle returned while a block was still registered")
	case <-time.After(20 * time.Millisecond):
	}

	tdm.EndProcessing(hash)

	select {
	case <-idleDone:
	case <-time.After(time.Second):
		t.Fatalf("WaitForIdle did not unblock once the last block finished")
	}
}
