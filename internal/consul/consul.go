package consul

import (
	"fmt"

	consulapi "github.com/hashicorp/consul/api"
)

// NewClient builds a consul client from the standard CONSUL_* env
// variables.
func NewClient() (*consulapi.Client, error) {
	client, err := consulapi.NewClient(consulapi.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}
	return client, nil
}

// RegisterService registers this instance with consul so a gateway can
// discover it. The health check rides the /ping endpoint.
func RegisterService(client *consulapi.Client, serviceName, address string, port int) error {
	registration := &consulapi.AgentServiceRegistration{
		ID:      serviceName,
		Name:    serviceName,
		Address: address,
		Port:    port,
		Check: &consulapi.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/ping", address, port),
			Interval:                       "10s",
			Timeout:                        "5s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service %s with consul: %w", serviceName, err)
	}
	return nil
}
