package clog

import (
	"bytes"
	"runtime"
	"strconv"
)

// Origin 标识日志来自哪个 goroutine
type Origin uint8

const (
	OriginBackground Origin = iota // 其他 goroutine
	OriginMain                     // main goroutine
)

func (o Origin) String() string {
	if o == OriginMain {
		return "main"
	}
	return "background"
}

// DetectOrigin 根据当前 goroutine id 判断来源，main goroutine 的 id 固定为 1
func DetectOrigin() Origin {
	if goroutineID() == 1 {
		return OriginMain
	}
	return OriginBackground
}

// goroutineID 从 runtime.Stack 的首行 "goroutine 18 [running]:" 中解析 id
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	line := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	end := bytes.IndexByte(line, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(line[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
