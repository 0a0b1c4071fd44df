package core

import "strings"

type EnvVar struct {
	Name  string
	Value string
}

// DefaultEnv is the environment every new terminal starts with.
var DefaultEnv = []EnvVar{
	{Name: "USER", Value: "user@nile-cgpa"},
	{Name: "HOME", Value: "/home/user"},
	{Name: "PATH", Value: "/usr/local/bin:/usr/bin:/bin"},
	{Name: "SHELL", Value: "/bin/bash"},
}

// Environment is the emulated shell environment. It keeps variables in the
// order they were first set.
type Environment struct {
	vars  map[string]string
	order []string
}

func NewEnvironment(seed ...EnvVar) *Environment {
	env := &Environment{
		vars:  make(map[string]string, len(seed)),
		order: make([]string, 0, len(seed)),
	}
	for _, v := range seed {
		env.store(v.Name, v.Value)
	}
	return env
}

func (e *Environment) Get(name string) (string, bool) {
	value, ok := e.vars[name]
	return value, ok
}

// Set expands value against the current environment and stores the result.
func (e *Environment) Set(name, value string) {
	e.store(name, Expand(value, e))
}

func (e *Environment) store(name, value string) {
	if _, exists := e.vars[name]; !exists {
		e.order = append(e.order, name)
	}
	e.vars[name] = value
}

func (e *Environment) Snapshot() []EnvVar {
	result := make([]EnvVar, 0, len(e.order))
	for _, name := range e.order {
		result = append(result, EnvVar{Name: name, Value: e.vars[name]})
	}
	return result
}

// String renders the environment the way the env builtin prints it.
func (e *Environment) String() string {
	pairs := make([]string, 0, len(e.order))
	for _, v := range e.Snapshot() {
		pairs = append(pairs, v.Name+"="+v.Value)
	}
	return strings.Join(pairs, "\n")
}
