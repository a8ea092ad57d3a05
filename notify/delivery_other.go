//go:build !windows

package notify

func newPlatformDelivery(config Config) Delivery {
	return NewBeeepDelivery(config)
}
