package webhookpubsub

import (
	"sync"

	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
)

// hookStore keeps the registered webhooks in memory, indexed both by id and
// by topic.
type hookStore struct {
	locker       *sync.RWMutex
	hooks        map[string]*Webhook
	hooksByTopic map[ports.Topic]map[string]*Webhook
}

func newHookStore() *hookStore {
	return &hookStore{
		locker:       &sync.RWMutex{},
		hooks:        make(map[string]*Webhook),
		hooksByTopic: make(map[ports.Topic]map[string]*Webhook),
	}
}

func (s *hookStore) add(hook *Webhook) {
	s.locker.Lock()
	defer s.locker.Unlock()

	if _, ok := s.hooks[hook.ID]; ok {
		return
	}
	s.hooks[hook.ID] = hook
	if _, ok := s.hooksByTopic[hook.EventTopic]; !ok {
		s.hooksByTopic[hook.EventTopic] = make(map[string]*Webhook)
	}
	s.hooksByTopic[hook.EventTopic][hook.ID] = hook
}

func (s *hookStore) remove(id string) {
	s.locker.Lock()
	defer s.locker.Unlock()

	hook, ok := s.hooks[id]
	if !ok {
		return
	}
	delete(s.hooks, id)
	delete(s.hooksByTopic[hook.EventTopic], id)
}

// forTopic returns the hooks subscribed for the given topic, including those
// subscribed for every topic.
func (s *hookStore) forTopic(topic ports.Topic) []*Webhook {
	s.locker.RLock()
	defer s.locker.RUnlock()

	hooks := make([]*Webhook, 0, len(s.hooksByTopic[topic]))
	for _, hook := range s.hooksByTopic[topic] {
		hooks = append(hooks, hook)
	}
	if topic != ports.AnyTopic {
		for _, hook := range s.hooksByTopic[ports.AnyTopic] {
			hooks = append(hooks, hook)
		}
	}
	return hooks
}
