package cache

// lruNode is one entry in the intrusive recency list.
type lruNode[K comparable, V any] struct {
	key   K
	value V
	prev  *lruNode[K, V]
	next  *lruNode[K, V]
}

// lruList is a doubly linked recency list. The front holds the most
// recently used node, the back the eviction candidate.
type lruList[K comparable, V any] struct {
	front *lruNode[K, V]
	back  *lruNode[K, V]
}

func (l *lruList[K, V]) pushFront(node *lruNode[K, V]) {
	node.prev = nil
	node.next = l.front
	if l.front != nil {
		l.front.prev = node
	}
	l.front = node
	if l.back == nil {
		l.back = node
	}
}

func (l *lruList[K, V]) remove(node *lruNode[K, V]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.front = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.back = node.prev
	}
	node.prev = nil
	node.next = nil
}

func (l *lruList[K, V]) moveToFront(node *lruNode[K, V]) {
	if l.front == node {
		return
	}
	l.remove(node)
	l.pushFront(node)
}

// removeOldest unlinks and returns the back node, or nil when empty.
func (l *lruList[K, V]) removeOldest() *lruNode[K, V] {
	node := l.back
	if node != nil {
		l.remove(node)
	}
	return node
}
