package log

import (
	"sync"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

// EntryZ is the allocation-free logging path. Fields accumulate into a fixed
// buffer and are only formatted in End(), and only when the entry's level is
// enabled for its module: warnings and errors always are, info and debug
// need the module's debug mask. A disabled entry is a nil *EntryZ, making
// the whole chain a no-op.
type EntryZ struct {
	lvl   Level
	msg   string
	mod   Module
	zfbuf [16]ZField
	zfidx int
}

var entryZPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func newEntryZ() *EntryZ {
	e := entryZPool.Get().(*EntryZ)
	e.zfidx = 0
	return e
}

func (e *EntryZ) addField(f ZField) *EntryZ {
	if e == nil || e.zfidx >= len(e.zfbuf) {
		return e
	}
	e.zfbuf[e.zfidx] = f
	e.zfidx++
	return e
}

func (e *EntryZ) String(key, val string) *EntryZ {
	return e.addField(ZField{Type: FieldTypeString, Key: key, String: val})
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	return e.addField(ZField{Type: FieldTypeBool, Key: key, Boolean: val})
}

func (e *EntryZ) Int(key string, val int64) *EntryZ {
	return e.addField(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Uint(key string, val uint64) *EntryZ {
	return e.addField(ZField{Type: FieldTypeUint, Key: key, Integer: val})
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return e.addField(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return e.addField(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex24(key string, val uint32) *EntryZ {
	return e.addField(ZField{Type: FieldTypeHex24, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex32(key string, val uint32) *EntryZ {
	return e.addField(ZField{Type: FieldTypeHex32, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	return e.addField(ZField{Type: FieldTypeError, Key: key, Error: err})
}

func (e *EntryZ) Duration(key string, d time.Duration) *EntryZ {
	return e.addField(ZField{Type: FieldTypeDuration, Key: key, Duration: d})
}

func (e *EntryZ) Blob(key string, blob []byte) *EntryZ {
	return e.addField(ZField{Type: FieldTypeBlob, Key: key, Blob: blob})
}

// End emits the entry and recycles it. The chain head may be nil (module
// disabled); End is then a no-op.
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = modNames[e.mod]
	for i := range e.zfbuf[:e.zfidx] {
		fields[e.zfbuf[i].Key] = e.zfbuf[i].Value()
	}

	entry := logrus.StandardLogger().WithFields(fields)
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case PanicLevel:
		entry.Panic(e.msg)
	}
	entryZPool.Put(e)
}
