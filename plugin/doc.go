// Package plugin defines the contract between the harness and an effect
// plugin instance, and the host-side steps that bring an instance into a
// known state before rendering.
//
// A plugin format (see FormatManager) locates plugin types inside a path and
// creates Instances. The host then negotiates a channel layout with
// ConfigureChannels and applies normalized parameter values with
// ApplyParameters.
//
// # Usage
//
//	mgr := plugin.NewFormatManager([]plugin.Format{builtin.NewFormat(builtin.DefaultRegistry())})
//	inst, err := mgr.Load("builtin:gain", 48000, 256)
//	if err != nil {
//		return err
//	}
//	defer inst.Close()
//
//	if err := plugin.ConfigureChannels(inst, 2, 48000, 256); err != nil {
//		return err
//	}
//	err = plugin.ApplyParameters(inst, map[string]float64{"gain": 0.5})
package plugin
