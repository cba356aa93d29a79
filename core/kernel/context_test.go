package kernel

import "testing"

func TestContextTryRecvRequiresRecvRight(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}

	if !ctx.SendTo(cap.Restrict(RightSend), 3, []byte("hi")) {
		t.Fatal("SendTo failed")
	}
	if _, ok := ctx.TryRecv(cap.Restrict(RightSend)); ok {
		t.Fatal("expected TryRecv to fail without recv right")
	}
	msg, ok := ctx.TryRecv(cap.Restrict(RightRecv))
	if !ok {
		t.Fatal("expected message")
	}
	if msg.Kind != 3 || string(msg.Payload()) != "hi" {
		t.Fatalf("msg = kind %d payload %q", msg.Kind, msg.Payload())
	}
}

func TestContextSendCapTransfersCapability(t *testing.T) {
	k := New()
	a := k.NewEndpoint(RightSend | RightRecv)
	b := k.NewEndpoint(RightSend | RightRecv)
	reply := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}

	res := ctx.SendCapResult(a.Restrict(RightSend), b.Restrict(RightSend), 9, nil, reply.Restrict(RightSend))
	if res != SendOK {
		t.Fatalf("SendCapResult = %s", res)
	}
	msg, ok := ctx.TryRecv(b)
	if !ok {
		t.Fatal("expected message")
	}
	if msg.From != a.ep || !msg.Cap.Valid() || msg.Cap.ep != reply.ep {
		t.Fatalf("msg = %+v", msg)
	}
}

func TestContextSendErrors(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}

	if res := ctx.SendCapResult(Capability{}, cap, 1, nil, Capability{}); res != SendErrInvalidFromCap {
		t.Fatalf("invalid from = %s", res)
	}
	if res := ctx.SendCapResult(cap.Restrict(RightRecv), cap, 1, nil, Capability{}); res != SendErrFromNoSendRight {
		t.Fatalf("from without send = %s", res)
	}
	if res := ctx.SendToCapResult(Capability{ep: 30, rights: RightSend}, 1, nil, Capability{}); res != SendErrNoEndpoint {
		t.Fatalf("unknown endpoint = %s", res)
	}
}

func TestBlockOnNonEmptyMailboxStaysRunnable(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	task := &lazyTask{ep: ep}
	k.AddTask(task)
	k.Post(ep, 1, nil)
	k.Post(ep, 2, nil)

	k.RunUntilIdle(0)
	if task.got != 2 {
		t.Fatalf("received = %d, want 2", task.got)
	}
}

// lazyTask reads one message per step.
type lazyTask struct {
	ep  Capability
	got int
}

func (t *lazyTask) Step(ctx *Context) {
	if _, ok := ctx.TryRecv(t.ep); ok {
		t.got++
	}
	ctx.BlockOn(t.ep)
}
