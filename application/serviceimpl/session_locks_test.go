package serviceimpl

import (
	"sync"
	"testing"
	"time"
)

func TestSessionLocksSerializeOneSession(t *testing.T) {
	locks := NewSessionLocks()
	unlock := locks.Lock("s1")

	acquired := make(chan struct{})
	go func() {
		release := locks.Lock("s1")
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder got the lock while the first still held it")
	case <-time.After(50 * time.Millisecond):
	}

	// other sessions are not blocked
	locks.Lock("s2")()

	unlock()
	<-acquired
}

func TestSessionLocksAreReleased(t *testing.T) {
	locks := NewSessionLocks()

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "a", "b", "a"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			locks.Lock(id)()
		}(id)
	}
	wg.Wait()

	if n := locks.Len(); n != 0 {
		t.Fatalf("%d session locks left after every holder released", n)
	}
}
