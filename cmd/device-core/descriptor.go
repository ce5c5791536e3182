package main

import (
	"fmt"
	"sync"

	"github.com/cnxtech/device-os/pkg/descriptor"
	"github.com/cnxtech/device-os/pkg/wire"
)

// demoDescriptor is a small in-memory Descriptor with a handful of
// functions and variables, standing in for the real firmware's
// function/variable registry.
type demoDescriptor struct {
	mu sync.Mutex

	funcKeys  []string
	functions map[string]func(arg string) (int32, error)

	varKeys  []string
	varTypes map[string]wire.VariableType
	vars     map[string]any

	otaSuccess bool
	otaSent    bool
}

func newDemoDescriptor() *demoDescriptor {
	d := &demoDescriptor{
		funcKeys:  []string{"led", "reboot"},
		functions: make(map[string]func(arg string) (int32, error)),
		varKeys:   []string{"uptime", "label"},
		varTypes: map[string]wire.VariableType{
			"uptime": wire.VariableInt,
			"label":  wire.VariableString,
		},
		vars: map[string]any{
			"uptime": int32(0),
			"label":  "device-core",
		},
	}
	d.functions["led"] = func(arg string) (int32, error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.vars["label"] = "led:" + arg
		return 1, nil
	}
	d.functions["reboot"] = func(arg string) (int32, error) {
		return 0, nil
	}
	return d
}

func (d *demoDescriptor) NumFunctions() int        { return len(d.funcKeys) }
func (d *demoDescriptor) FunctionKey(i int) string { return d.funcKeys[i] }

func (d *demoDescriptor) CallFunction(key, arg string) (int32, error) {
	d.mu.Lock()
	fn := d.functions[key]
	d.mu.Unlock()
	if fn == nil {
		return 0, fmt.Errorf("device-core: unknown function %q", key)
	}
	return fn(arg)
}

func (d *demoDescriptor) NumVariables() int        { return len(d.varKeys) }
func (d *demoDescriptor) VariableKey(i int) string { return d.varKeys[i] }
func (d *demoDescriptor) VariableType(key string) wire.VariableType {
	return d.varTypes[key]
}

func (d *demoDescriptor) GetVariable(key string) (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.vars[key]
	return v, ok
}

func (d *demoDescriptor) setVariable(key string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vars[key] = value
}

func (d *demoDescriptor) WasOTAUpgradeSuccessful() bool { return d.otaSuccess }
func (d *demoDescriptor) OTAUpgradeStatusSent()         { d.otaSent = true }

var _ descriptor.Descriptor = (*demoDescriptor)(nil)
