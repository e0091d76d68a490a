package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/IBM/sarama"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeSession struct {
	ctx    context.Context
	mu     sync.Mutex
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32 { return nil }
func (s *fakeSession) MemberID() string { return "member-1" }
func (s *fakeSession) GenerationID() int32 { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string) {}
func (s *fakeSession) Commit() {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Context() context.Context { return s.ctx }
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg.Offset)
}

func (s *fakeSession) markedOffsets() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.marked...)
}

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func newFakeClaim(offsets ...int64) *fakeClaim {
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, len(offsets)+1)}
	for _, offset := range offsets {
		claim.messages <- &sarama.ConsumerMessage{Topic: "colaboradores.import", Offset: offset, Value: []byte(`{}`)}
	}
	return claim
}

func (c *fakeClaim) Topic() string { return "colaboradores.import" }
func (c *fakeClaim) Partition() int32 { return 0 }
func (c *fakeClaim) InitialOffset() int64 { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64 { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

type batchRecorder struct {
	mu      sync.Mutex
	batches [][]int64
	failOn  int
}

func (r *batchRecorder) handle(messages []Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	offsets := make([]int64, len(messages))
	for i, msg := range messages {
		offsets[i] = msg.Offset()
	}
	r.batches = append(r.batches, offsets)

	if len(r.batches) == r.failOn {
		return errors.New("invalid colaborador payload")
	}
	return nil
}

func (r *batchRecorder) received() [][]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]int64(nil), r.batches...)
}

var _ = Describe("consumerGroupHandler", func() {
	var (
		ctx      context.Context
		cancel   context.CancelFunc
		session  *fakeSession
		recorder *batchRecorder
	)

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		DeferCleanup(cancel)
		session = &fakeSession{ctx: ctx}
		recorder = &batchRecorder{}
	})

	newHandler := func(batchSize int, batchTimeout time.Duration) *consumerGroupHandler {
		return &consumerGroupHandler{handler: recorder.handle, batchSize: batchSize, batchTimeout: batchTimeout}
	}

	It("flushes a batch when it reaches the batch size and marks it", func() {
		// ARRANGE
		claim := newFakeClaim(0, 1, 2, 3)
		close(claim.messages)
		handler := newHandler(2, time.Minute)

		// ACT
		err := handler.ConsumeClaim(session, claim)

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(recorder.received()).To(Equal([][]int64{{0, 1}, {2, 3}}))
		Expect(session.markedOffsets()).To(Equal([]int64{0, 1, 2, 3}))
	})

	It("flushes a partial batch when the timeout fires", func() {
		// ARRANGE
		claim := newFakeClaim(7)
		handler := newHandler(10, 20*time.Millisecond)
		done := make(chan error, 1)

		// ACT
		go func() { done <- handler.ConsumeClaim(session, claim) }()

		// ASSERT
		Eventually(recorder.received).Should(Equal([][]int64{{7}}))
		Eventually(session.markedOffsets).Should(Equal([]int64{7}))

		cancel()
		Eventually(done).Should(Receive(BeNil()))
	})

	It("flushes what is pending when the session ends", func() {
		// ARRANGE
		claim := newFakeClaim(4, 5)
		handler := newHandler(10, time.Minute)
		done := make(chan error, 1)

		// ACT
		go func() { done <- handler.ConsumeClaim(session, claim) }()
		Eventually(func() int { return len(claim.messages) }).Should(BeZero())
		cancel()

		// ASSERT
		Eventually(done).Should(Receive(BeNil()))
		Expect(recorder.received()).To(Equal([][]int64{{4, 5}}))
		Expect(session.markedOffsets()).To(Equal([]int64{4, 5}))
	})

	When("the handler fails a batch", func() {
		It("stops the claim without marking so the batch is delivered again", func() {
			// ARRANGE
			recorder.failOn = 1
			claim := newFakeClaim(0, 1, 2, 3)
			close(claim.messages)
			handler := newHandler(2, time.Minute)

			// ACT
			err := handler.ConsumeClaim(session, claim)

			// ASSERT
			Expect(err).To(MatchError(ContainSubstring("batch from offset 0")))
			Expect(recorder.received()).To(Equal([][]int64{{0, 1}}))
			Expect(session.markedOffsets()).To(BeEmpty())
			Expect(handler.failed.Load()).To(BeTrue())
		})

		It("keeps the offsets of earlier batches and nothing past the failure", func() {
			// ARRANGE
			recorder.failOn = 2
			claim := newFakeClaim(0, 1, 2, 3, 4)
			close(claim.messages)
			handler := newHandler(2, time.Minute)

			// ACT
			err := handler.ConsumeClaim(session, claim)

			// ASSERT
			Expect(err).To(HaveOccurred())
			Expect(recorder.received()).To(Equal([][]int64{{0, 1}, {2, 3}}))
			Expect(session.markedOffsets()).To(Equal([]int64{0, 1}))
		})
	})
})
