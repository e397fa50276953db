// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	// Register the Vulkan HAL backend.
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/shaderdemo"
)

// Device is an open HAL device and its queue.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	name     string
	external bool
}

// Open creates a Vulkan instance and opens the adapter that best matches
// pref.
func Open(pref shaderdemo.PowerPreference) (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan HAL backend not registered", shaderdemo.ErrNoAdapter)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", shaderdemo.ErrNoAdapter, err)
	}
	d, err := OpenInstance(instance, pref)
	if err != nil {
		instance.Destroy()
		return nil, err
	}
	return d, nil
}

// OpenInstance opens a device on an adapter of instance. On success the
// Device owns instance and destroys it with the device.
func OpenInstance(instance hal.Instance, pref shaderdemo.PowerPreference) (*Device, error) {
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return nil, fmt.Errorf("%w: no GPU adapters found", shaderdemo.ErrNoAdapter)
	}

	types := make([]gputypes.DeviceType, len(adapters))
	for i := range adapters {
		types[i] = adapters[i].Info.DeviceType
	}
	selected := &adapters[pickAdapter(types, pref)]

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", shaderdemo.ErrDeviceCreation, selected.Info.Name, err)
	}

	shaderdemo.Logger().Info("native: adapter selected",
		"name", selected.Info.Name,
		"type", selected.Info.DeviceType,
		"power_preference", pref)

	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		name:     selected.Info.Name,
	}, nil
}

// pickAdapter returns the index of the preferred adapter. High performance
// favours discrete GPUs, low power favours integrated ones; the default
// takes the first hardware adapter. Software adapters are the last resort.
func pickAdapter(types []gputypes.DeviceType, pref shaderdemo.PowerPreference) int {
	var order []gputypes.DeviceType
	switch pref {
	case shaderdemo.PowerPreferenceHighPerformance:
		order = []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU}
	case shaderdemo.PowerPreferenceLowPower:
		order = []gputypes.DeviceType{gputypes.DeviceTypeIntegratedGPU, gputypes.DeviceTypeDiscreteGPU}
	default:
		for i, t := range types {
			if t == gputypes.DeviceTypeDiscreteGPU || t == gputypes.DeviceTypeIntegratedGPU {
				return i
			}
		}
		return 0
	}
	for _, want := range order {
		for i, t := range types {
			if t == want {
				return i
			}
		}
	}
	return 0
}

// NewDevice wraps a device owned by the caller. Destroy leaves it open.
func NewDevice(device hal.Device, queue hal.Queue) *Device {
	return &Device{device: device, queue: queue, name: "external", external: true}
}

// FromProvider uses the device of a host application, such as a gogpu
// App sharing its GPU with the demo. The provider must also expose the
// HAL objects through HalDevice() any and HalQueue() any.
func FromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: nil device provider", shaderdemo.ErrDeviceCreation)
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: provider does not expose HAL types", shaderdemo.ErrDeviceCreation)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", shaderdemo.ErrDeviceCreation)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", shaderdemo.ErrDeviceCreation)
	}
	return NewDevice(device, queue), nil
}

// Name returns the adapter name.
func (d *Device) Name() string { return d.name }

// HalDevice returns the underlying HAL device.
func (d *Device) HalDevice() hal.Device { return d.device }

// HalQueue returns the underlying HAL queue.
func (d *Device) HalQueue() hal.Queue { return d.queue }

// Destroy closes the device and instance unless they belong to a host.
func (d *Device) Destroy() {
	if d.external {
		return
	}
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.queue = nil
}
