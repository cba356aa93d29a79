package kernel

const (
	maxTasks     = 32
	maxEndpoints = 32
	mailboxSlots = 32
)

type TaskID uint8

// Rights define which operations are allowed for a capability.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint identifies an IPC destination.
type Endpoint uint8

// Capability grants access to an IPC endpoint.
//
// It is opaque by construction (no exported fields) and may be transferred via IPC.
type Capability struct {
	ep     Endpoint
	rights Rights
}

func (c Capability) valid() bool {
	return c.rights != 0
}

func (c Capability) Valid() bool { return c.valid() }

func (c Capability) canSend() bool { return c.rights&RightSend != 0 }
func (c Capability) canRecv() bool { return c.rights&RightRecv != 0 }

// Restrict returns a capability with a reduced set of rights.
func (c Capability) Restrict(rights Rights) Capability {
	if !c.valid() {
		return Capability{}
	}
	r := c.rights & rights
	if r == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: r}
}

// Message is a fixed-size IPC envelope.
type Message struct {
	From Endpoint
	To   Endpoint
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
	Cap  Capability
}

// Payload returns the valid part of Data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > len(m.Data) {
		n = len(m.Data)
	}
	return m.Data[:n]
}

// MaxMessageBytes is the maximum payload size for IPC messages.
//
// Pixel data never travels through mailboxes; tasks draw straight into the surface.
const MaxMessageBytes = 128

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidFromCap
	SendErrInvalidToCap
	SendErrFromNoSendRight
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendErrInvalidFromCap:
		return "invalid from capability"
	case SendErrInvalidToCap:
		return "invalid to capability"
	case SendErrFromNoSendRight:
		return "from capability has no send right"
	case SendErrToNoSendRight:
		return "to capability has no send right"
	case SendErrNoEndpoint:
		return "no such endpoint"
	case SendErrPayloadTooLarge:
		return "payload too large"
	case SendErrQueueFull:
		return "queue full"
	default:
		return "unknown"
	}
}

// Task is a cooperative unit of execution.
//
// Step must return promptly. A task that has nothing to do calls BlockOn or
// BlockOnTick before returning; otherwise it is scheduled again.
type Task interface {
	Step(*Context)
}

type endpointState struct {
	q        mailbox
	waitMask uint32
}

type taskState struct {
	task     Task
	runnable bool
	exited   bool
	waiting  Endpoint
}

// Kernel is a minimal cooperative scheduler plus IPC router.
//
// A Kernel is not safe for concurrent use; the host drives it from a single loop.
type Kernel struct {
	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint

	tasks     [maxTasks]taskState
	taskCount TaskID

	rr TaskID

	tick         uint64
	tickWaitMask uint32

	onPanic  func(PanicInfo)
	panicked bool
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{}
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	if k.endpointCount >= maxEndpoints {
		return Capability{}
	}
	ep := k.endpointCount
	k.endpointCount++
	return Capability{ep: ep, rights: rights}
}

// AddTask registers a task and returns its ID.
//
// ok is false when the task table is full.
func (k *Kernel) AddTask(t Task) (id TaskID, ok bool) {
	if k.taskCount >= maxTasks || t == nil {
		return 0, false
	}
	id = k.taskCount
	k.taskCount++
	k.tasks[id] = taskState{task: t, runnable: true}
	return id, true
}

// Exited reports whether the task has returned via Context.Exit or panicked.
func (k *Kernel) Exited(id TaskID) bool {
	if id >= k.taskCount {
		return true
	}
	return k.tasks[id].exited
}

// Step runs at most one runnable task step. It reports whether a task ran.
func (k *Kernel) Step() bool {
	if k.taskCount == 0 {
		return false
	}

	for i := TaskID(0); i < k.taskCount; i++ {
		id := (k.rr + i) % k.taskCount
		st := &k.tasks[id]
		if st.task == nil || !st.runnable || st.exited {
			continue
		}

		k.rr = (id + 1) % k.taskCount
		ctx := &Context{k: k, taskID: id}
		k.runTask(id, st, ctx)

		switch {
		case ctx.exited:
			st.runnable = false
			st.exited = true
			k.forget(id)
		case ctx.blocked:
			st.runnable = false
			if ctx.blockOnTick {
				k.tickWaitMask |= 1 << id
			} else {
				st.waiting = ctx.blockOn
				if st.waiting < k.endpointCount {
					ep := &k.endpoints[st.waiting]
					if ep.q.len() > 0 {
						st.runnable = true
					} else {
						ep.waitMask |= 1 << id
					}
				}
			}
		}
		return true
	}
	return false
}

func (k *Kernel) runTask(id TaskID, st *taskState, ctx *Context) {
	defer func() {
		if r := recover(); r != nil {
			ctx.exited = true
			k.triggerPanic(PanicInfo{TaskID: id, Value: r})
		}
	}()
	st.task.Step(ctx)
}

// forget drops any wait registrations of an exited task.
func (k *Kernel) forget(id TaskID) {
	bit := uint32(1) << id
	k.tickWaitMask &^= bit
	for i := Endpoint(0); i < k.endpointCount; i++ {
		k.endpoints[i].waitMask &^= bit
	}
}

// RunUntilIdle steps tasks until none is runnable or budget steps have run.
// It returns the number of steps taken. A budget <= 0 means no limit.
func (k *Kernel) RunUntilIdle(budget int) int {
	n := 0
	for budget <= 0 || n < budget {
		if !k.Step() {
			break
		}
		n++
	}
	return n
}

// TickTo advances the kernel tick and wakes tasks blocked via Context.BlockOnTick.
//
// Sequence numbers that do not move forward are ignored.
func (k *Kernel) TickTo(seq uint64) {
	if seq <= k.tick {
		return
	}
	k.tick = seq

	wait := k.tickWaitMask
	if wait == 0 {
		return
	}
	for tid := TaskID(0); tid < k.taskCount; tid++ {
		if wait&(1<<tid) == 0 {
			continue
		}
		if !k.tasks[tid].exited {
			k.tasks[tid].runnable = true
		}
	}
	k.tickWaitMask = 0
}

// Tick returns the last tick passed to TickTo.
func (k *Kernel) Tick() uint64 { return k.tick }

// Post delivers a message from outside any task (the host event pump).
//
// The message From field is set to 0 (unknown).
func (k *Kernel) Post(toCap Capability, kind uint16, payload []byte) SendResult {
	if !toCap.valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	return k.send(0, toCap.ep, kind, payload, Capability{})
}

func (k *Kernel) send(from Endpoint, to Endpoint, kind uint16, payload []byte, xfer Capability) SendResult {
	if to >= k.endpointCount {
		return SendErrNoEndpoint
	}
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}

	var msg Message
	msg.From = from
	msg.To = to
	msg.Kind = kind
	msg.Len = uint16(len(payload))
	copy(msg.Data[:], payload)
	msg.Cap = xfer

	ep := &k.endpoints[to]
	if !ep.q.push(msg) {
		return SendErrQueueFull
	}

	wait := ep.waitMask
	if wait == 0 {
		return SendOK
	}

	for tid := TaskID(0); tid < k.taskCount; tid++ {
		if wait&(1<<tid) == 0 {
			continue
		}
		if !k.tasks[tid].exited {
			k.tasks[tid].runnable = true
		}
		ep.waitMask &^= 1 << tid
	}
	return SendOK
}

func (k *Kernel) recv(to Endpoint) (Message, bool) {
	if to >= k.endpointCount {
		return Message{}, false
	}
	return k.endpoints[to].q.pop()
}
