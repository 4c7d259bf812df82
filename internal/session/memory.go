package session

import (
	"github.com/yildizm/SciCalc/internal/calc"
	"github.com/yildizm/SciCalc/internal/logger"
)

// MemoryClear sets the memory register to zero
func (s *Session) MemoryClear() {
	s.memory = 0
}

// MemoryRecall appends the memory register to the buffer
func (s *Session) MemoryRecall() {
	s.append(calc.Format(s.memory))
}

// MemoryStore overwrites memory with the buffer's value. A buffer that is not
// a plain number is ignored without error; the return value only reports
// whether memory changed.
func (s *Session) MemoryStore() bool {
	v, ok := calc.ParseNumber(s.buffer)
	if !ok {
		s.log.DebugWithFields("memory store ignored", []logger.Field{logger.Expr(s.buffer)})
		return false
	}
	s.memory = v
	return true
}

// MemoryAdd adds the buffer's value to memory, with the same silent policy
// as MemoryStore.
func (s *Session) MemoryAdd() bool {
	v, ok := calc.ParseNumber(s.buffer)
	if !ok {
		s.log.DebugWithFields("memory add ignored", []logger.Field{logger.Expr(s.buffer)})
		return false
	}
	s.memory += v
	return true
}
